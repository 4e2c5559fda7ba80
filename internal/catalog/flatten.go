package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flipcart-next/internal/models"
)

// ErrUnsupportedShape 目录响应既不是数组也不是目录文档
var ErrUnsupportedShape = errors.New("unsupported catalog shape")

// Flatten 将目录响应展开为扁平商品列表
//
// 支持三种形状：
//   - 商品数组 [{id,...}]
//   - 目录文档数组 [{products:[...]}]
//   - 单个目录文档 {products:[...]}
//
// 数组元素逐个判定，允许混合：带 products 的展开，带 id 的按商品解析，其余跳过。
func Flatten(raw []byte) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrUnsupportedShape
	}

	switch trimmed[0] {
	case '{':
		var doc models.CatalogDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode catalog document: %w", err)
		}
		if doc.Products == nil {
			return nil, ErrUnsupportedShape
		}
		return doc.Products, nil
	case '[':
	default:
		return nil, ErrUnsupportedShape
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog array: %w", err)
	}
	products := make([]models.Product, 0, len(entries))
	for i, entry := range entries {
		fields, ok := objectFields(entry)
		if !ok {
			continue
		}
		if inner, nested := nestedProducts(fields); nested {
			var batch []models.Product
			if err := json.Unmarshal(inner, &batch); err != nil {
				return nil, fmt.Errorf("decode nested products at %d: %w", i, err)
			}
			products = append(products, batch...)
			continue
		}
		if !hasID(fields) {
			continue
		}
		var product models.Product
		if err := json.Unmarshal(entry, &product); err != nil {
			return nil, fmt.Errorf("decode product at %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func objectFields(entry json.RawMessage) (map[string]json.RawMessage, bool) {
	entry = bytes.TrimSpace(entry)
	if len(entry) == 0 || entry[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// nestedProducts 返回元素中的 products 数组（若存在）
func nestedProducts(fields map[string]json.RawMessage) (json.RawMessage, bool) {
	inner := bytes.TrimSpace(fields["products"])
	if len(inner) == 0 || inner[0] != '[' {
		return nil, false
	}
	return inner, true
}

func hasID(fields map[string]json.RawMessage) bool {
	id := bytes.TrimSpace(fields["id"])
	return len(id) > 0 && !bytes.Equal(id, []byte("null"))
}
