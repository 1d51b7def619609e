package internal

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// formats the text in a javascript like syntax.
func format(text string, params map[string]string) string {
	for key, val := range params {
		text = strings.Replace(text, fmt.Sprintf("${%v}", key), val, -1)
	}
	return text
}

// MapFunc returns a slice of all elements in the given slice mapped by the given function.
func MapFunc[T any, S any](function func(T) S, slice []T) []S {
	mappedSlice := make([]S, len(slice))
	for i, v := range slice {
		mappedSlice[i] = function(v)
	}
	return mappedSlice
}

// FilterFunc takes a predicate function and returns all the elements of the slice which return true for the function.
func FilterFunc[T any](function func(T) bool, slice []T) []T {
	var filtered []T
	for _, v := range slice {
		if function(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// writeToFile writes text string to the given filename.
func writeToFile(text, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(text)
	return err
}

func roundFloat(num float64, digits int) float64 {
	tenMultiplier := math.Pow10(digits)
	return math.Round(num*tenMultiplier) / tenMultiplier
}

// logWritten reports a file written by an export or a plot.
func logWritten(what, filename string) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		Log("red", "unable to get the absolute path for "+what+": "+err.Error())
		return
	}
	Log("green", "Successfully wrote "+what+" to `"+absPath+"`.")
}
