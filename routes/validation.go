package routes

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/studyclub-io/study-club-be/model"
)

// RegisterValidations installs the domain value validations used by the
// binding tags below. Call once before routes are added.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("attendancetype", func(fl validator.FieldLevel) bool {
		return model.AttendanceType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("memberrole", func(fl validator.FieldLevel) bool {
		switch model.Role(fl.Field().String()) {
		case model.RoleMember, model.RoleAdmin, model.RoleOwner:
			return true
		}
		return false
	})
}
