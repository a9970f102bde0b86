// Package listview provides a generic scrollable picker for Bubble Tea views.
//
// Picker renders only the options inside its viewport and reports Enter/Esc
// as ActionSelect/ActionCancel, leaving the caller to apply the choice. The
// browser uses it for filter kinds and for the status, gender and species
// option lists.
package listview
