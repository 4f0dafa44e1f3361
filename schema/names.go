package schema

import "fmt"

type namedColumn struct {
	name string
	unit string
}

// namedColumns is the verified head of the 516-column table, matching the
// vendor CSV export column order. Columns past this head have not been
// identified against reference logs and get generated placeholder names.
var namedColumns = []namedColumn{
	{"Point Number", ""},
	{"RTC", "ms"},
	{"RPM", "rpm"},
	{"Inj PW", "ms"},
	{"Duty Cycle", "%"},
	{"CL Comp", "%"},
	{"Target AFR", "afr"},
	{"AFR Left", "afr"},
	{"AFR Right", "afr"},
	{"AFR Average", "afr"},
	{"Air Temp Enr", "%"},
	{"Coolant Enr", "%"},
	{"Coolant AFR Offset", "afr"},
	{"Afterstart Enr", "%"},
	{"Current Learn", "%"},
	{"Closed Loop Status", ""},
	{"Learn Status", ""},
	{"Fuel Flow", "lb/hr"},
	{"Fuel Pressure", "psi"},
	{"Oil Pressure", "psi"},
	{"MAP", "kPa"},
	{"TPS", "%"},
	{"Baro", "kPa"},
	{"MAT", "F"},
	{"CTS", "F"},
	{"Battery", "V"},
	{"Main Rev Limit", "rpm"},
	{"Rev Limiter Status", ""},
	{"Ignition Timing", "deg"},
	{"Knock Retard", "deg"},
	{"Knock Level", "V"},
	{"Timing Retard 1", "deg"},
	{"Timing Retard 2", "deg"},
	{"Timing Retard 3", "deg"},
	{"IAC Position", ""},
	{"Idle Status", ""},
	{"Fan 1", ""},
	{"Fan 2", ""},
	{"Fuel Pump", ""},
	{"AC Kick", ""},
	{"Speed", "mph"},
	{"Gear", ""},
	{"Line Pressure", "psi"},
	{"Torque Converter Lockup", ""},
	{"Trans Temp", "F"},
	{"Pedal Position", "%"},
	{"Boost", "psi"},
	{"Boost Target", "psi"},
}

// columnName returns the CSV column name at ordinal i. Unidentified
// positions use the same Param_NNN placeholders the vendor tooling shows.
func columnName(i int) string {
	if i < len(namedColumns) {
		return namedColumns[i].name
	}

	return fmt.Sprintf("Param_%03d", i)
}

// columnUnit returns the engineering unit at ordinal i, empty when unknown.
func columnUnit(i int) string {
	if i < len(namedColumns) {
		return namedColumns[i].unit
	}

	return ""
}
