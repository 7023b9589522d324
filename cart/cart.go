// cart/cart.go

// Package cart はカートの中核ロジックを提供します。
// サーバーに保存された疎なカート行（productId と qty の組）と商品カタログを
// 突き合わせて明細行を生成し、合計金額・合計数量を算出します。
package cart

import "log"

// Product はカタログが公開する商品データです。読み取り専用です。
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image"`
}

// Row はサーバーに永続化されたカート行です。productId ごとに一意です。
type Row struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// LineItem はカート行を商品データで補完した明細行です。
// 保存されず、読み取りのたびに Row と Product から再計算されます。
type LineItem struct {
	Product
	Qty int `json:"qty"`
}

// ResolveLineItems はカート行をカタログと突き合わせて明細行を生成します。
// カタログに存在しない productId の行は黙って除外します（商品がサーバー側で
// 削除された後もカート行が残るケース）。出力順は rows の順序を保ちます。
// rows が nil の場合はログを出して空のスライスを返し、呼び出し側を壊しません。
func ResolveLineItems(rows []Row, catalog []Product) []LineItem {
	if rows == nil {
		log.Println("cart: cart rows are missing, resolving to an empty cart")
		return []LineItem{}
	}

	byID := make(map[string]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		p, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		items = append(items, LineItem{Product: p, Qty: row.Qty})
	}
	return items
}

// TotalValue は明細行の合計金額（cost × qty の総和）を返します。
// 空または nil の入力には 0 を返します。
func TotalValue(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Cost * float64(item.Qty)
	}
	return total
}

// TotalUnits は明細行の合計数量を返します。空または nil の入力には 0 を返します。
func TotalUnits(items []LineItem) int {
	var total int
	for _, item := range items {
		total += item.Qty
	}
	return total
}

// Contains は productID の行がカートに存在するかを返します。
func Contains(rows []Row, productID string) bool {
	for _, row := range rows {
		if row.ProductID == productID {
			return true
		}
	}
	return false
}
