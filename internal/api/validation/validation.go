// Package validation 注册业务相关的参数校验标签
package validation

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

var (
	once    sync.Once
	initErr error
)

// Register 向 gin 默认校验器注册自定义标签，可重复调用
//   - shift_type：九种班次类型之一
//   - department：部门枚举之一
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin 校验引擎不是 validator/v10")
			return
		}
		if initErr = v.RegisterValidation("shift_type", shiftType); initErr != nil {
			return
		}
		initErr = v.RegisterValidation("department", department)
	})
	return initErr
}

func shiftType(fl validator.FieldLevel) bool {
	return model.ShiftType(fl.Field().String()).IsValid()
}

func department(fl validator.FieldLevel) bool {
	return model.IsValidDepartment(fl.Field().String())
}
