package catalog

import (
	"strings"

	"github.com/flipcart-next/internal/models"
)

// Query 商品浏览/搜索条件
type Query struct {
	Keyword  string
	Category string
	Limit    int
}

// Filter 按条件筛选商品，保持原有顺序
// 关键字匹配标题、描述、品牌、分类（忽略大小写），有关键字时排除已下架商品
func Filter(products []models.Product, q Query) []models.Product {
	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	category := strings.TrimSpace(q.Category)

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if keyword != "" && (p.Deleted || !matchesKeyword(p, keyword)) {
			continue
		}
		result = append(result, p)
		if q.Limit > 0 && len(result) >= q.Limit {
			break
		}
	}
	return result
}

func matchesKeyword(p models.Product, keyword string) bool {
	for _, field := range []string{p.Title, p.Description, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// Categories 返回去重后的分类，按首次出现排序
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}
	return categories
}
