package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConditionalUpdate 条件更新未命中：记录状态已被其他操作修改
var ErrConditionalUpdate = errors.New("记录状态已被其他操作修改，请刷新后重试")

// IsUniqueViolation 判断是否为唯一约束冲突
// 依赖 gorm.Config.TranslateError=true 将驱动错误翻译为 gorm.ErrDuplicatedKey
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
