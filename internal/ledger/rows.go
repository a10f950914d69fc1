package ledger

func columnsFor(typ ReportType) []Column {
	switch typ {
	case ReportInward:
		return []Column{
			{"date", "Date"}, {"product", "Product"}, {"sku", "SKU"}, {"warehouse", "Warehouse"},
			{"party", "Supplier"}, {"quantity", "Quantity"}, {"unit_cost", "Unit Cost"},
			{"total_value", "Total Value"}, {"batch_no", "Batch"}, {"expiry_date", "Expiry"},
		}
	case ReportOutward:
		return []Column{
			{"date", "Date"}, {"product", "Product"}, {"sku", "SKU"}, {"warehouse", "Warehouse"},
			{"party", "Customer"}, {"destination", "Destination"}, {"quantity", "Quantity"},
			{"unit_cost", "Unit Cost"}, {"total_value", "Total Value"},
		}
	case ReportStock:
		return []Column{
			{"product", "Product"}, {"sku", "SKU"}, {"warehouse", "Warehouse"},
			{"inward_qty", "Inward"}, {"outward_qty", "Outward"}, {"current_stock", "Current Stock"},
			{"unit_cost", "Unit Cost"}, {"total_value", "Total Value"},
		}
	case ReportLowStock:
		return []Column{
			{"product", "Product"}, {"sku", "SKU"}, {"warehouse", "Warehouse"},
			{"current_stock", "Current Stock"}, {"threshold", "Min Stock"}, {"status", "Status"},
		}
	case ReportPartyWise:
		return []Column{
			{"party", "Party"}, {"party_type", "Type"}, {"inward_qty", "Inward Qty"},
			{"inward_value", "Inward Value"}, {"outward_qty", "Outward Qty"},
			{"outward_value", "Outward Value"}, {"net_value", "Net Value"},
			{"transactions", "Transactions"},
		}
	case ReportDateWise:
		return []Column{
			{"date", "Date"}, {"inward_qty", "Inward"}, {"outward_qty", "Outward"},
			{"net_movement", "Net Movement"}, {"transactions", "Transactions"},
		}
	case ReportValueAnalysis:
		return []Column{
			{"total_inward_qty", "Total Inward Qty"}, {"total_inward_value", "Total Inward Value"},
			{"avg_inward_price", "Avg Inward Price"}, {"total_outward_qty", "Total Outward Qty"},
			{"total_outward_value", "Total Outward Value"}, {"avg_outward_price", "Avg Outward Price"},
			{"current_stock_qty", "Current Stock Qty"}, {"current_stock_value", "Current Stock Value"},
		}
	}
	return nil
}

func (r InwardRow) row() Row {
	expiry := ""
	if r.ExpiryDate != nil {
		expiry = r.ExpiryDate.Format(DateLayout)
	}
	return Row{
		"id":          r.ID,
		"date":        r.Date.Format(DateLayout),
		"product_id":  r.ProductID,
		"product":     r.ProductName,
		"sku":         r.SKU,
		"warehouse":   r.WarehouseName,
		"party":       r.PartyName,
		"quantity":    r.Quantity,
		"unit_cost":   r.UnitCost,
		"total_value": r.TotalValue,
		"batch_no":    r.BatchNo,
		"expiry_date": expiry,
	}
}

func (r OutwardRow) row() Row {
	return Row{
		"id":          r.ID,
		"date":        r.Date.Format(DateLayout),
		"product_id":  r.ProductID,
		"product":     r.ProductName,
		"sku":         r.SKU,
		"warehouse":   r.WarehouseName,
		"party":       r.PartyName,
		"destination": r.Destination,
		"quantity":    r.Quantity,
		"unit_cost":   r.UnitCost,
		"total_value": r.TotalValue,
	}
}

func positionRow(p StockPosition) Row {
	return Row{
		"product_id":    p.ProductID,
		"warehouse_id":  p.WarehouseID,
		"product":       p.ProductName,
		"sku":           p.SKU,
		"warehouse":     p.WarehouseName,
		"inward_qty":    p.InwardQty,
		"outward_qty":   p.OutwardQty,
		"current_stock": p.CurrentStock,
		"unit_cost":     p.UnitCost,
		"total_value":   p.TotalValue,
	}
}

func (r LowStockRow) row() Row {
	return Row{
		"product_id":    r.ProductID,
		"warehouse_id":  r.WarehouseID,
		"product":       r.ProductName,
		"sku":           r.SKU,
		"warehouse":     r.WarehouseName,
		"current_stock": r.CurrentStock,
		"threshold":     r.Threshold,
		"status":        r.Status,
	}
}

func (r PartyRow) row() Row {
	return Row{
		"party_id":      r.PartyID,
		"party":         r.PartyName,
		"party_type":    string(r.PartyType),
		"inward_qty":    r.InwardQty,
		"inward_value":  r.InwardValue,
		"outward_qty":   r.OutwardQty,
		"outward_value": r.OutwardValue,
		"net_qty":       r.NetQty,
		"net_value":     r.NetValue,
		"transactions":  r.Transactions,
	}
}

func (r DateRow) row() Row {
	return Row{
		"date":         r.Date,
		"inward_qty":   r.InwardQty,
		"outward_qty":  r.OutwardQty,
		"net_movement": r.NetMovement,
		"transactions": r.Transactions,
	}
}

func (v ValueAnalysis) row() Row {
	return Row{
		"total_inward_qty":     v.TotalInwardQty,
		"total_inward_value":   v.TotalInwardValue,
		"avg_inward_price":     v.AvgInwardPrice,
		"total_outward_qty":    v.TotalOutwardQty,
		"total_outward_value":  v.TotalOutwardValue,
		"avg_outward_price":    v.AvgOutwardPrice,
		"inward_transactions":  v.InwardTransactions,
		"outward_transactions": v.OutwardTransactions,
		"current_stock_qty":    v.CurrentStockQty,
		"current_stock_value":  v.CurrentStockValue,
	}
}
