package dto

import "time"

// StockResponse salida de una fila del libro mayor.
type StockResponse struct {
	ProductID    string           `json:"productId"`
	SiteID       string           `json:"siteId"`
	QuantityNew  int              `json:"quantityNew"`
	QuantityUsed int              `json:"quantityUsed"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Product      *ProductResponse `json:"product,omitempty"`
	Site         *SiteResponse    `json:"site,omitempty"`
}

// StockTotals agregados por estado para un producto.
type StockTotals struct {
	TotalNew  int `json:"totalNew"`
	TotalUsed int `json:"totalUsed"`
	Total     int `json:"total"`
}

// ProductStocksResponse stock de un producto en todos los sitios, con totales.
type ProductStocksResponse struct {
	Stocks []StockResponse `json:"stocks"`
	Totals StockTotals     `json:"totals"`
}

// StockAlertResponse producto de riesgo HIGH con stock bajo el umbral.
// PrimarySupplier es el proveedor principal del producto, si está vinculado.
type StockAlertResponse struct {
	Product         ProductResponse   `json:"product"`
	TotalStock      int               `json:"totalStock"`
	Threshold       int               `json:"threshold"`
	IsCritical      bool              `json:"isCritical"`
	PrimarySupplier *SupplierResponse `json:"primarySupplier,omitempty"`
}
