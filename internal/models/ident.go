package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EntityID 统一标识类型（商品、用户、购物车）
// JSON 中既可以是字符串也可以是数字，解析后统一为字符串
type EntityID string

// ParseEntityID 从任意原始值解析标识
func ParseEntityID(value interface{}) (EntityID, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case EntityID:
		return EntityID(strings.TrimSpace(string(v))), nil
	case string:
		return EntityID(strings.TrimSpace(v)), nil
	case json.Number:
		return parseNumericID(v.String())
	case float64:
		return formatFloatID(v)
	case int:
		return EntityID(strconv.Itoa(v)), nil
	case int64:
		return EntityID(strconv.FormatInt(v, 10)), nil
	case uint:
		return EntityID(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return EntityID(strconv.FormatUint(v, 10)), nil
	default:
		return "", fmt.Errorf("unsupported id type %T", value)
	}
}

// String 返回字符串形式
func (id EntityID) String() string {
	return string(id)
}

// IsZero 判断标识是否为空
func (id EntityID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON 兼容字符串与数字两种写法
func (id *EntityID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = EntityID(strings.TrimSpace(s))
		return nil
	}
	parsed, err := parseNumericID(string(trimmed))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseNumericID(raw string) (EntityID, error) {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return EntityID(raw), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return formatFloatID(f)
}

func formatFloatID(f float64) (EntityID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("invalid id %v", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		return EntityID(strconv.FormatInt(int64(f), 10)), nil
	}
	return EntityID(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// FlexInt 宽松整数，兼容数字与数字字符串，小数向零截断
// 字符串取整数前缀，数字按数值截断
type FlexInt int

// UnmarshalJSON 解析宽松整数
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		value, err := ParseLooseInt(raw)
		if err != nil {
			return err
		}
		*n = FlexInt(value)
		return nil
	}
	// JSON 数字（含 1e3 这类指数写法）按数值截断
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", trimmed, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("integer out of range: %s", trimmed)
	}
	*n = FlexInt(int(math.Trunc(f)))
	return nil
}

// ParseLooseInt 解析整数前缀（"3"、"2.7"、" 4 items" 均可）
func ParseLooseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if end == 0 && (ch == '-' || ch == '+') {
			end++
			continue
		}
		break
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return value, nil
}
