package main

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/course"
)

// addCourse seeds a catalog course. The catalog is admin-curated: there is
// no API endpoint to create courses.
func (cli *commandLine) addCourse(nc course.NewCourse) error {
	if err := nc.Validate(validator.New()); err != nil {
		return err
	}
	crs := course.Course{
		Title:          core.CleanString(nc.Title),
		Subject:        core.CleanString(nc.Subject),
		GradeLevel:     core.CleanString(nc.GradeLevel),
		Description:    nc.Description,
		InstructorName: core.CleanString(nc.InstructorName),
		Rating:         nc.Rating,
		StudentCount:   nc.StudentCount,
		DurationHours:  nc.DurationHours,
		Language:       nc.Language,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := cli.crsRepo.CreateCourse(context.Background(), crs); err != nil {
		return err
	}
	return nil
}
