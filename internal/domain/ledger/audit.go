package ledger

// AuditColumns is the bill row as written to the audit log
func (b *RegisterEntry) AuditColumns() map[string]any {
	return map[string]any{
		"supplier_id":    b.SupplierID,
		"party_id":       b.PartyID,
		"bill_number":    b.BillNumber,
		"register_date":  b.RegisterDate.Format(DateLayout),
		"amount":         b.Amount,
		"partial_amount": b.PartialAmount,
		"gr_amount":      b.GRAmount,
		"deduction":      b.Deduction,
		"status":         string(b.Status),
	}
}

// AuditColumns is the memo row as written to the audit log, with the line
// and cheque counts
func (m *MemoEntry) AuditColumns() map[string]any {
	return map[string]any{
		"supplier_id":   m.SupplierID,
		"party_id":      m.PartyID,
		"memo_number":   m.MemoNumber,
		"register_date": m.RegisterDate.Format(DateLayout),
		"amount":        m.Amount,
		"gr_amount":     m.GRAmount,
		"deduction":     m.Deduction,
		"mode":          string(m.Mode),
		"lines":         len(m.Lines),
		"payments":      len(m.Payments),
	}
}
