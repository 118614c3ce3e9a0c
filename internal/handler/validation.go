package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// pesanValidasi meringkas error validator jadi satu pesan pendek buat client.
func pesanValidasi(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		switch e.Tag() {
		case "required":
			return fmt.Sprintf("Field %s wajib diisi", e.Field())
		case "oneof":
			return fmt.Sprintf("Field %s harus salah satu dari: %s", e.Field(), e.Param())
		case "datetime":
			return fmt.Sprintf("Field %s harus berformat %s", e.Field(), e.Param())
		case "email":
			return fmt.Sprintf("Field %s bukan alamat email yang valid", e.Field())
		case "min", "max", "gt", "gte", "lte":
			return fmt.Sprintf("Field %s di luar rentang yang diizinkan", e.Field())
		}
		return fmt.Sprintf("Field %s tidak valid", e.Field())
	}
	return "Data tidak valid"
}
