package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// ============================================================
// Statement export (CSV and printable HTML)
// ============================================================

var fullMonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the pt-BR month name for 1-12; out of range yields "".
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return fullMonthNames[month-1]
}

func formatBRL(v decimal.Decimal) string {
	// pt-BR: thousands dot, decimal comma.
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// StatementCSV renders the monthly statement as semicolon separated CSV with
// a UTF-8 BOM so pt-BR Excel opens it with accents and columns intact.
func StatementCSV(stmt domain.MonthlyStatement, churchName string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	write := func(record ...string) error {
		return w.Write(record)
	}

	rows := [][]string{
		{churchName},
		{fmt.Sprintf("Relatório Mensal - %s/%d", MonthName(stmt.Month), stmt.Year)},
		{},
		{"Saldo Anterior", formatBRL(stmt.OpeningBalance)},
		{},
	}
	for _, r := range rows {
		if err := write(r...); err != nil {
			return nil, err
		}
	}

	sections := []struct {
		title string
		lines []domain.StatementLine
		total decimal.Decimal
	}{
		{"Dízimos", stmt.Tithes, stmt.TithesTotal},
		{"Ofertas", stmt.Offerings, stmt.OfferingsTotal},
		{"Outras Entradas", stmt.OtherIncome, stmt.OtherTotal},
		{"Saídas", stmt.Expenses, stmt.ExpenseTotal},
	}
	for _, s := range sections {
		if err := write(s.title); err != nil {
			return nil, err
		}
		if err := write("Data", "Descrição", "Categoria", "Valor"); err != nil {
			return nil, err
		}
		for _, line := range s.lines {
			if err := write(line.Date, line.Description, line.Category, formatBRL(line.Value)); err != nil {
				return nil, err
			}
		}
		if err := write("Total", "", "", formatBRL(s.total)); err != nil {
			return nil, err
		}
		if err := write(); err != nil {
			return nil, err
		}
	}

	summary := [][]string{
		{"Total de Entradas", formatBRL(stmt.IncomeTotal)},
		{"Total de Saídas", formatBRL(stmt.ExpenseTotal)},
		{"Saldo Final", formatBRL(stmt.ClosingBalance)},
	}
	for _, r := range summary {
		if err := write(r...); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var statementTmpl = template.Must(template.New("statement").Funcs(template.FuncMap{
	"brl":       formatBRL,
	"monthName": MonthName,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório Mensal - {{monthName .Stmt.Month}}/{{.Stmt.Year}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 2rem; color: #222; }
  h1 { font-size: 1.3rem; margin-bottom: 0; }
  h2 { font-size: 1rem; border-bottom: 1px solid #999; padding-bottom: 2px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 1rem; }
  th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; font-size: 0.85rem; }
  td.value, th.value { text-align: right; }
  tr.total td { font-weight: bold; border-top: 1px solid #999; }
  .summary td { font-weight: bold; }
  @media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>{{.ChurchName}}</h1>
<p>Relatório Mensal - {{monthName .Stmt.Month}}/{{.Stmt.Year}}{{if .Stmt.IsClosed}} (mês fechado){{end}}</p>
<p><strong>Saldo Anterior:</strong> {{brl .Stmt.OpeningBalance}}</p>
{{range .Sections}}
<h2>{{.Title}}</h2>
<table>
<tr><th>Data</th><th>Descrição</th><th>Categoria</th><th class="value">Valor</th></tr>
{{range .Lines}}<tr><td>{{.Date}}</td><td>{{.Description}}</td><td>{{.Category}}</td><td class="value">{{brl .Value}}</td></tr>
{{end}}<tr class="total"><td colspan="3">Total</td><td class="value">{{brl .Total}}</td></tr>
</table>
{{end}}
<table class="summary">
<tr><td>Total de Entradas</td><td class="value">{{brl .Stmt.IncomeTotal}}</td></tr>
<tr><td>Total de Saídas</td><td class="value">{{brl .Stmt.ExpenseTotal}}</td></tr>
<tr><td>Saldo Final</td><td class="value">{{brl .Stmt.ClosingBalance}}</td></tr>
</table>
</body>
</html>
`))

type statementSection struct {
	Title string
	Lines []domain.StatementLine
	Total decimal.Decimal
}

// StatementHTML renders the statement as a printable page.
func StatementHTML(stmt domain.MonthlyStatement, churchName string) ([]byte, error) {
	var buf bytes.Buffer
	err := statementTmpl.Execute(&buf, map[string]any{
		"Stmt":       stmt,
		"ChurchName": churchName,
		"Sections": []statementSection{
			{"Dízimos", stmt.Tithes, stmt.TithesTotal},
			{"Ofertas", stmt.Offerings, stmt.OfferingsTotal},
			{"Outras Entradas", stmt.OtherIncome, stmt.OtherTotal},
			{"Saídas", stmt.Expenses, stmt.ExpenseTotal},
		},
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
