package dto

import "encoding/json"

// Nullable 区分请求体中缺省的字段和显式的 null。
// 缺省时 Set 为 false；为 null 时 Set 为 true 且 Value 为 nil。
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON 只有字段出现在请求体中时才会被调用 (包括 null)
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
