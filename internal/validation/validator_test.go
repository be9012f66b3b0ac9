// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package validation

import (
	"strings"
	"testing"
)

type recommendBody struct {
	Skills []string `validate:"required"`
	Limit  int      `validate:"omitempty,min=0,max=1000"`
}

func TestValidateStructOK(t *testing.T) {
	if err := ValidateStruct(&recommendBody{Skills: []string{"go"}, Limit: 10}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(&recommendBody{})
	if err == nil {
		t.Fatal("expected validation error for missing skills")
	}
	fields := err.Fields()
	if len(fields) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fields))
	}
	if fields[0].Field != "Skills" || fields[0].Tag != "required" {
		t.Errorf("unexpected field error: %+v", fields[0])
	}
	if !strings.Contains(err.Error(), "Skills is required") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidateStructMax(t *testing.T) {
	err := ValidateStruct(&recommendBody{Skills: []string{"go"}, Limit: 5000})
	if err == nil {
		t.Fatal("expected validation error for limit above max")
	}
	if !strings.Contains(err.Error(), "at most 1000") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}
