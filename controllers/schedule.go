package controllers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gateway/models"
)

var dayRank = map[string]int{
	"MONDAY":    1,
	"TUESDAY":   2,
	"WEDNESDAY": 3,
	"THURSDAY":  4,
	"FRIDAY":    5,
	"SATURDAY":  6,
	"SUNDAY":    7,
}

var weekDays = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

func rankOf(day string) int {
	if r, ok := dayRank[strings.ToUpper(day)]; ok {
		return r
	}
	// Unknown day names sort after the known week.
	return len(dayRank) + 1
}

// sortOpeningTimes imposes Monday-first order on rows that have no intrinsic
// sort key. The sort is stable so unknown days keep their relative order.
func sortOpeningTimes(rows []models.OpeningTimeRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rankOf(rows[i].Day) < rankOf(rows[j].Day)
	})
}

// clockPair renders a stored time as the textual tuple the schema expects:
// "09:05:00" becomes ["9", "05"]. Hour unpadded, minute always two digits.
func clockPair(t string) [2]string {
	h, m := 0, 0
	fmt.Sscanf(t, "%d:%d", &h, &m)
	return [2]string{strconv.Itoa(h), fmt.Sprintf("%02d", m)}
}

// renderOpeningTimes orders the rows and shapes them for the wire. A closed
// day renders with an empty times list.
func renderOpeningTimes(rows []models.OpeningTimeRow) []models.OpeningTime {
	sortOpeningTimes(rows)
	out := make([]models.OpeningTime, 0, len(rows))
	for _, row := range rows {
		ot := models.OpeningTime{Day: row.Day, Times: []models.TimeSlot{}}
		if !row.IsClosed {
			ot.Times = append(ot.Times, models.TimeSlot{
				StartTime: clockPair(row.StartTime),
				EndTime:   clockPair(row.EndTime),
			})
		}
		out = append(out, ot)
	}
	return out
}
