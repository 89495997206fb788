// Package ledger implementa los libros de una bodega: existencias por producto
// y defectuosos por producto. Es la única vía para modificar las cantidades de
// entity.Stock.
package ledger

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Bucket identifica el libro afectado.
type Bucket int

const (
	OnHand Bucket = iota // existencias
	Defect               // defectuosos
)

func (b Bucket) String() string {
	if b == Defect {
		return "defect"
	}
	return "on-hand"
}

// Line cantidad (positiva) de un producto.
type Line struct {
	Product string
	Amount  int
}

// Delta cambio con signo sobre un libro.
type Delta struct {
	Bucket  Bucket
	Product string
	Amount  int
}

// Effect es el conjunto de cambios que un documento (entrega, pedido) implica
// sobre una bodega. Se aplica con Apply y se deshace con Revert.
type Effect []Delta

// Inverse devuelve el efecto opuesto.
func (e Effect) Inverse() Effect {
	out := make(Effect, len(e))
	for i, d := range e {
		out[i] = Delta{Bucket: d.Bucket, Product: d.Product, Amount: -d.Amount}
	}
	return out
}

// Add agrega lines al libro b con signo sign (+1/-1).
func (e Effect) Add(b Bucket, sign int, lines []Line) Effect {
	for _, l := range lines {
		e = append(e, Delta{Bucket: b, Product: l.Product, Amount: sign * l.Amount})
	}
	return e
}

// FromProducts convierte líneas de producto en líneas del libro.
func FromProducts(in []entity.ProductLine) []Line {
	out := make([]Line, 0, len(in))
	for _, l := range in {
		out = append(out, Line{Product: l.Product, Amount: l.Amount})
	}
	return out
}

// FromDefects convierte líneas de defectos en líneas del libro.
func FromDefects(in []entity.DefectLine) []Line {
	out := make([]Line, 0, len(in))
	for _, l := range in {
		out = append(out, Line{Product: l.Product, Amount: l.Amount})
	}
	return out
}

type book struct {
	qty   map[string]int
	order []string
}

func newBook(items []entity.StockItem) *book {
	b := &book{qty: make(map[string]int, len(items))}
	for _, it := range items {
		if _, ok := b.qty[it.Product]; !ok {
			b.order = append(b.order, it.Product)
		}
		b.qty[it.Product] += it.Amount
	}
	return b
}

func (b *book) add(product string, amount int) {
	if _, ok := b.qty[product]; !ok {
		b.order = append(b.order, product)
	}
	b.qty[product] += amount
}

func (b *book) items() []entity.StockItem {
	out := make([]entity.StockItem, 0, len(b.order))
	for _, p := range b.order {
		if q := b.qty[p]; q != 0 {
			out = append(out, entity.StockItem{Product: p, Amount: q})
		}
	}
	return out
}

// Ledger es la representación en memoria de los libros de una bodega.
// Las operaciones se acumulan y se persisten una sola vez (WriteTo + save).
type Ledger struct {
	stockID string
	onHand  *book
	defect  *book
	dirty   bool
}

// New carga los libros desde el documento de la bodega.
func New(stock *entity.Stock) *Ledger {
	return &Ledger{
		stockID: stock.ID,
		onHand:  newBook(stock.Products),
		defect:  newBook(stock.Defects),
	}
}

// StockID identifica la bodega.
func (l *Ledger) StockID() string { return l.stockID }

// Dirty indica si hubo cambios desde la carga.
func (l *Ledger) Dirty() bool { return l.dirty }

// OnHand devuelve la existencia de un producto.
func (l *Ledger) OnHand(product string) int { return l.onHand.qty[product] }

// DefectQty devuelve la cantidad defectuosa de un producto.
func (l *Ledger) DefectQty(product string) int { return l.defect.qty[product] }

func (l *Ledger) bookFor(b Bucket) *book {
	if b == Defect {
		return l.defect
	}
	return l.onHand
}

// Increase suma lines a las existencias.
func (l *Ledger) Increase(lines []Line) {
	l.Apply(Effect{}.Add(OnHand, 1, lines))
}

// Decrease resta lines de las existencias. Es atómico: si alguna cantidad
// quedaría negativa no modifica nada y devuelve ErrInsufficientStock.
func (l *Ledger) Decrease(lines []Line) error {
	return l.ApplyStrict(Effect{}.Add(OnHand, -1, lines))
}

// IncreaseDefect suma lines a los defectuosos.
func (l *Ledger) IncreaseDefect(lines []Line) {
	l.Apply(Effect{}.Add(Defect, 1, lines))
}

// DecreaseDefect resta lines de los defectuosos (atómico, como Decrease).
func (l *Ledger) DecreaseDefect(lines []Line) error {
	return l.ApplyStrict(Effect{}.Add(Defect, -1, lines))
}

// Apply aplica el efecto sin verificar el invariante. Se usa dentro de una
// reconciliación (revert + apply) que se valida al final con Validate.
func (l *Ledger) Apply(e Effect) {
	for _, d := range e {
		if d.Amount == 0 {
			continue
		}
		l.bookFor(d.Bucket).add(d.Product, d.Amount)
		l.dirty = true
	}
}

// Revert deshace un efecto aplicado previamente.
func (l *Ledger) Revert(e Effect) {
	l.Apply(e.Inverse())
}

// ApplyStrict aplica el efecto solo si ninguna cantidad queda negativa.
func (l *Ledger) ApplyStrict(e Effect) error {
	pending := map[Bucket]map[string]int{OnHand: {}, Defect: {}}
	for _, d := range e {
		pending[d.Bucket][d.Product] += d.Amount
	}
	for _, b := range []Bucket{OnHand, Defect} {
		for p, delta := range pending[b] {
			if l.bookFor(b).qty[p]+delta < 0 {
				return insufficient(b, p)
			}
		}
	}
	l.Apply(e)
	return nil
}

// Validate comprueba el invariante cantidad >= 0 en ambos libros.
func (l *Ledger) Validate() error {
	for _, b := range []Bucket{OnHand, Defect} {
		bk := l.bookFor(b)
		products := make([]string, 0, len(bk.qty))
		for p := range bk.qty {
			products = append(products, p)
		}
		sort.Strings(products)
		for _, p := range products {
			if bk.qty[p] < 0 {
				return insufficient(b, p)
			}
		}
	}
	return nil
}

// WriteTo vuelca los libros al documento (las filas en cero se eliminan).
func (l *Ledger) WriteTo(stock *entity.Stock) {
	stock.Products = l.onHand.items()
	stock.Defects = l.defect.items()
}

func insufficient(b Bucket, product string) error {
	if b == Defect {
		return domain.InsufficientStock(fmt.Sprintf("Недостаточно бракованного товара на складе (товар %s).", product))
	}
	return domain.InsufficientStock(fmt.Sprintf("Недостаточно товара на складе (товар %s).", product))
}
