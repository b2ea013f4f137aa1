package shell

import (
	"strconv"
	"strings"
)

// Command is a main-menu entry. Values match the numbers shown to the user.
type Command int

const (
	CommandRecord Command = iota + 1
	CommandView
	CommandFilter
	CommandSummary
	CommandReport
	CommandExit
)

var commandLabels = map[Command]string{
	CommandRecord:  "Record Expense",
	CommandView:    "View Expenses",
	CommandFilter:  "Filter Expenses",
	CommandSummary: "Summary",
	CommandReport:  "Generate Report",
	CommandExit:    "Exit",
}

// Commands lists the menu in display order.
func Commands() []Command {
	return []Command{CommandRecord, CommandView, CommandFilter, CommandSummary, CommandReport, CommandExit}
}

func (c Command) String() string {
	if l, ok := commandLabels[c]; ok {
		return l
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

// ParseCommand maps a menu selection such as "3" onto a Command.
func ParseCommand(input string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	c := Command(n)
	_, ok := commandLabels[c]
	return c, ok
}

// filterMode is an entry of the filter submenu.
type filterMode int

const (
	filterByCategory filterMode = iota + 1
	filterByDateRange
	filterByCategories
)

var filterLabels = map[filterMode]string{
	filterByCategory:   "By category",
	filterByDateRange:  "By date range",
	filterByCategories: "By multiple categories",
}

func parseFilterMode(input string) (filterMode, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	m := filterMode(n)
	_, ok := filterLabels[m]
	return m, ok
}
