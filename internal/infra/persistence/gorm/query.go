package gormpersistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"job-board/internal/repository"
)

// applySearch 在 Search.Fields 指定的列上做 LIKE 子串匹配，各列之间为 OR。
// 列名只来自 repository 包中的常量。
func applySearch(tx *gorm.DB, s repository.Search) *gorm.DB {
	if s.Empty() {
		return tx
	}
	like := "%" + s.Term + "%"
	conds := make([]string, 0, len(s.Fields))
	args := make([]interface{}, 0, len(s.Fields))
	for _, f := range s.Fields {
		conds = append(conds, f+" LIKE ?")
		args = append(args, like)
	}
	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// paginate 按分页参数设置 OFFSET / LIMIT
func paginate(tx *gorm.DB, page repository.PageRequest) *gorm.DB {
	return tx.Offset(page.Offset()).Limit(page.PerPage)
}

// confirmAffected 在 UPDATE 影响 0 行时确认记录是否存在。
// MySQL 在值未变化时同样返回 0，不能据此判断记录不存在。
func confirmAffected(result *gorm.DB, tx *gorm.DB, model interface{}, id uint, notFound error) error {
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("gorm: check %T existence (id: %d): %w", model, id, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}
