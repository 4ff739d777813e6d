package request

import (
	"sync"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the "hhmm" and "ymd" tags on gin's validator. Safe to call repeatedly.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errs.New("gin validator engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("hhmm", validateTimeOfDay); err != nil {
			registerErr = errs.Wrap(err, "register hhmm")
			return
		}
		if err := v.RegisterValidation("ymd", validateDate); err != nil {
			registerErr = errs.Wrap(err, "register ymd")
		}
	})
	return registerErr
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := booking.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := booking.ParseDate(fl.Field().String())
	return err == nil
}
