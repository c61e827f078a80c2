package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"10.5", "R$ 10,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-350", "-R$ 350,00"},
	}
	for _, c := range cases {
		if got := formatBRL(dec(c.in)); got != c.want {
			t.Errorf("formatBRL(%s): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "Janeiro" {
		t.Errorf("expected Janeiro, got %s", got)
	}
	if got := MonthName(12); got != "Dezembro" {
		t.Errorf("expected Dezembro, got %s", got)
	}
	if got := MonthName(0); got != "" {
		t.Errorf("expected empty for 0, got %s", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("expected empty for 13, got %s", got)
	}
}

func TestStatementCSV(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2025, 6)

	out, err := StatementCSV(stmt, "Igreja Exemplo")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	if !bytes.HasPrefix(out, []byte("\xef\xbb\xbf")) {
		t.Error("csv must start with a UTF-8 BOM")
	}

	content := string(out)
	for _, want := range []string{
		"Igreja Exemplo",
		"Relatório Mensal - Junho/2025",
		"Saldo Anterior;R$ 1.600,00",
		"Dízimos",
		"Ofertas",
		"Outras Entradas",
		"Saídas",
		"Dízimo João",
		"Total de Entradas;R$ 580,00",
		"Total de Saídas;R$ 120,00",
		"Saldo Final;R$ 2.060,00",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("csv missing %q", want)
		}
	}
}

func TestStatementHTML(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2025, 6)

	out, err := StatementHTML(stmt, "Igreja Exemplo")
	if err != nil {
		t.Fatalf("html: %v", err)
	}

	content := string(out)
	for _, want := range []string{
		"<h1>Igreja Exemplo</h1>",
		"Relatório Mensal - Junho/2025",
		"(mês fechado)",
		"Dízimo Maria",
		"R$ 2.060,00",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestStatementHTML_EscapesDescriptions(t *testing.T) {
	stmt := domain.MonthlyStatement{
		Year:  2025,
		Month: 3,
		Expenses: []domain.StatementLine{
			{Date: "2025-03-01", Description: "<script>alert(1)</script>", Value: dec("10")},
		},
	}

	out, err := StatementHTML(stmt, "Igreja")
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if strings.Contains(string(out), "<script>alert(1)</script>") {
		t.Error("descriptions must be escaped")
	}
}
