// seed_catalog genera un script SQL que carga el catálogo de un proveedor
// (proveedor + artículos en cantidad 0) a partir de su XML.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee catalogo.xml del directorio actual y escribe en stdout.
// El XML puede venir en ISO-8859-1:
//
//	<catalogo proveedor="Acme" contacto="Ana" email="ventas@acme.co" telefono="555">
//	  <articulo sku="T-1" nombre="Tornillo" categoria="Ferretería" precio="10.50" costo="6" reorden="5"/>
//	</catalogo>
//
// Las cantidades no se cargan aquí: el stock inicial entra por el ledger.
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Proveedor string     `xml:"proveedor,attr"`
	Contacto  string     `xml:"contacto,attr"`
	Email     string     `xml:"email,attr"`
	Telefono  string     `xml:"telefono,attr"`
	Direccion string     `xml:"direccion,attr"`
	Articulos []articulo `xml:"articulo"`
}

type articulo struct {
	SKU       string `xml:"sku,attr"`
	Nombre    string `xml:"nombre,attr"`
	Categoria string `xml:"categoria,attr"`
	Precio    string `xml:"precio,attr"`
	Costo     string `xml:"costo,attr"`
	Reorden   string `xml:"reorden,attr"`
}

// seedItem fila validada de inventory_items.
type seedItem struct {
	id, sku, name, category string
	price, cost             decimal.Decimal
	reorder                 int
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	c, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		file, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	items, skipped := buildItems(c)
	if err := writeSQL(out, c, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Proveedor %q: %d artículos, %d omitidos\n", c.Proveedor, len(items), skipped)
}

// parseCatalog decodifica el XML aceptando ISO-8859-1 además de UTF-8.
func parseCatalog(r io.Reader) (*catalogo, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	c.Proveedor = strings.TrimSpace(c.Proveedor)
	if c.Proveedor == "" {
		return nil, fmt.Errorf("atributo proveedor requerido")
	}
	return &c, nil
}

// supplierID es estable por nombre para que el script se pueda re-ejecutar.
func supplierID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("supplier:"+strings.ToLower(name))).String()
}

// buildItems valida los artículos; omite los que no tienen sku o nombre o traen montos inválidos.
func buildItems(c *catalogo) ([]seedItem, int) {
	var items []seedItem
	skipped := 0
	seen := make(map[string]bool)
	for _, a := range c.Articulos {
		sku := strings.ToUpper(strings.TrimSpace(a.SKU))
		name := strings.TrimSpace(a.Nombre)
		if sku == "" || name == "" || seen[sku] {
			skipped++
			continue
		}
		price, err1 := parseAmount(a.Precio)
		cost, err2 := parseAmount(a.Costo)
		reorder, err3 := strconv.Atoi(nonEmpty(strings.TrimSpace(a.Reorden), "0"))
		if err1 != nil || err2 != nil || err3 != nil || reorder < 0 {
			skipped++
			continue
		}
		seen[sku] = true
		items = append(items, seedItem{
			id:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("item:"+sku)).String(),
			sku:      sku,
			name:     name,
			category: strings.TrimSpace(a.Categoria),
			price:    price,
			cost:     cost,
			reorder:  reorder,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].sku < items[j].sku })
	return items, skipped
}

// parseAmount admite coma decimal ("10,50").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("monto negativo %s", s)
	}
	return d.Round(2), nil
}

func writeSQL(w io.Writer, c *catalogo, items []seedItem) error {
	sid := supplierID(c.Proveedor)
	var b strings.Builder
	fmt.Fprintf(&b, "-- Catálogo del proveedor %s\n\n", escapeSQL(c.Proveedor))
	b.WriteString("INSERT INTO suppliers (id, name, contact_name, email, phone, address)\n")
	fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s')\n",
		sid, escapeSQL(c.Proveedor), escapeSQL(c.Contacto), escapeSQL(c.Email), escapeSQL(c.Telefono), escapeSQL(c.Direccion))
	b.WriteString("ON CONFLICT (id) DO UPDATE SET contact_name = EXCLUDED.contact_name, email = EXCLUDED.email,\n")
	b.WriteString("  phone = EXCLUDED.phone, address = EXCLUDED.address, updated_at = now();\n\n")

	if len(items) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO inventory_items (id, sku, name, category, price, cost_price, reorder_level, supplier_id, quantity) VALUES\n")
	for i, it := range items {
		sep := ","
		if i == len(items)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, %s, %d, '%s', 0)%s\n",
			it.id, escapeSQL(it.sku), escapeSQL(it.name), escapeSQL(it.category),
			it.price.StringFixed(2), it.cost.StringFixed(2), it.reorder, sid, sep)
	}
	b.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category,\n")
	b.WriteString("  price = EXCLUDED.price, cost_price = EXCLUDED.cost_price, reorder_level = EXCLUDED.reorder_level,\n")
	b.WriteString("  supplier_id = EXCLUDED.supplier_id, updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
