package model

// カートの明細。
// 追加時点の商品情報（価格・画像・在庫上限）をコピーして持つ。
type CartLine struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug,omitempty"`
	Price     float64  `json:"price"`
	Images    []string `json:"images,omitempty"`
	Stock     int      `json:"stock"`
	Category  string   `json:"category,omitempty"`
	Quantity  int      `json:"quantity"`
}

// Image は先頭画像（無ければ空）。
func (l CartLine) Image() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}
