package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

type field struct {
	name  string
	value string
}

func requireText(fields ...field) []error {
	var errs []error
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}
	return errs
}

func requireDate(name string, d model.Date) error {
	if d.IsZero() {
		return fmt.Errorf("%s is required", name)
	}
	if _, ok := d.Time(); !ok {
		return fmt.Errorf("%s must be a YYYY-MM-DD date, got %q", name, d)
	}
	return nil
}

func joinValidation(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{model.ErrValidation}, errs...)...)
}

// ValidateCreate checks creation input without touching any store.
func (c *Controller) ValidateCreate(p model.CreateParams) error {
	errs := requireText(
		field{"responsible_name", p.ResponsibleName},
		field{"badge_id", p.BadgeID},
		field{"part_number", p.PartNumber},
		field{"description", p.Description},
		field{"equipment_tag", p.EquipmentTag},
		field{"failure_description", p.FailureDescription},
		field{"service_scope", p.ServiceScope},
		field{"withdrawal_order", p.WithdrawalOrder},
	)

	if math.IsNaN(p.HourMeter) || math.IsInf(p.HourMeter, 0) || p.HourMeter < 0 {
		errs = append(errs, errors.New("hour_meter must be a number >= 0"))
	}

	if err := requireDate("withdrawal_date", p.WithdrawalDate); err != nil {
		errs = append(errs, err)
	}

	if p.Image != nil {
		if p.Image.Content == nil {
			errs = append(errs, errors.New("image content is empty"))
		}
		ext := strings.ToLower(filepath.Ext(p.Image.Name))
		if _, ok := imageExtensions[ext]; !ok {
			errs = append(errs, fmt.Errorf("image must be jpg, jpeg or png, got %q", p.Image.Name))
		}
	}

	return joinValidation(errs)
}
