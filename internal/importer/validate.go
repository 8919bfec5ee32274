package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateDocument checks doc before conversion and returns every problem
// found. Dangling name links are not errors; they fall back to literal values
// when resolved.
func ValidateDocument(doc *Document) []error {
	var errs []error
	errs = append(errs, validateFields(doc)...)

	parentIDs := make(map[string]bool, len(doc.ParentMilestones))
	for i, p := range doc.ParentMilestones {
		if p.ID == "" {
			continue
		}
		if parentIDs[p.ID] {
			errs = append(errs, fmt.Errorf("parent_milestones[%d].id: duplicate id %q", i, p.ID))
		}
		parentIDs[p.ID] = true
	}

	ids := make(map[string]bool, len(doc.Milestones))
	for i, m := range doc.Milestones {
		prefix := fmt.Sprintf("milestones[%d]", i)

		if m.ID != "" {
			if ids[m.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, m.ID))
			}
			ids[m.ID] = true
		}

		if pid := domain.StrValue(m.ParentMilestoneID); pid != "" && !parentIDs[pid] {
			errs = append(errs, fmt.Errorf("%s.parent_milestone_id: %q not found in parent_milestones", prefix, pid))
		}

		link := domain.Milestone{
			Name:                   m.Name,
			StartAfterMilestone:    m.StartAfterMilestone,
			DurationEndAtMilestone: m.DurationEndAtMilestone,
		}
		if err := link.ValidateLinks(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
	}

	return errs
}

func validateFields(doc *Document) []error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: %s", fieldPath(fe), describe(fe)))
	}
	return errs
}

// fieldPath strips the root type from a validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("invalid value %q (want one of %s)", fmt.Sprint(fe.Value()), fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	case "gtefield":
		return "must be >= min_age"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
