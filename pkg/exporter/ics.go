package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// GenerateICS projects the weekly timeslots of the given class records
// onto concrete dates and writes an ICS calendar. firstMonday is the
// Monday of the first teaching week; weeks is how many weeks to emit.
func GenerateICS(records []model.ClassRecord, firstMonday time.Time, weeks int, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	monday := time.Date(firstMonday.Year(), firstMonday.Month(), firstMonday.Day(), 0, 0, 0, 0, loc)

	for _, record := range records {
		for _, run := range record.Modules {
			for slotIdx, slot := range run.Timeslots {
				for week := 0; week < weeks; week++ {
					day := monday.AddDate(0, 0, week*7+int(slot.Weekday))

					start := day.Add(time.Duration(slot.StartSeconds) * time.Second)
					end := day.Add(time.Duration(slot.EndSeconds) * time.Second)

					event := cal.AddEvent(fmt.Sprintf("%s-%d-%d", run.ID, slotIdx, week))
					event.SetCreatedTime(time.Now())
					event.SetDtStampTime(time.Now())
					event.SetModifiedAt(time.Now())
					event.SetStartAt(start)
					event.SetEndAt(end)
					event.SetSummary(run.ModuleShorthand)
					if len(slot.Rooms) > 0 {
						event.SetLocation(strings.Join(slot.Rooms, ", "))
					}

					description := fmt.Sprintf("Class: %s\nTeaching type: %s", record.Name, slot.TeachingType)
					if len(run.LecturerShorthands) > 0 {
						description += fmt.Sprintf("\nLecturers: %s", strings.Join(run.LecturerShorthands, ", "))
					}
					event.SetDescription(description)
				}
			}
		}
	}

	return cal.SerializeTo(w)
}
