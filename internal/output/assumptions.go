package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Heating demand is the same whichever system supplies it",
	"40% of solar generation is used directly by the heat pump",
	"Energy prices and standing charges stay flat over the heat pump's life",
	"No discounting: a pound saved in year 20 counts the same as today",
	"Lifetime savings use the smart tariff only",
}
