package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// 金额和积分以JSON数字输出
	decimal.MarshalJSONWithoutQuotes = true
}

// scanJSON 将TEXT列中的JSON解析到dest，空值视为空列表
func scanJSON(src interface{}, dest interface{}) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// jsonValue 序列化为TEXT列的值
func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// StringList 以JSON数组存储的字符串列表
type StringList []string

// Value 实现 driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue([]string(l))
}

// Scan 实现 sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	*l = StringList{}
	return scanJSON(src, (*[]string)(l))
}

// Int64List 以JSON数组存储的ID列表
type Int64List []int64

// Value 实现 driver.Valuer
func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue([]int64(l))
}

// Scan 实现 sql.Scanner
func (l *Int64List) Scan(src interface{}) error {
	*l = Int64List{}
	return scanJSON(src, (*[]int64)(l))
}
