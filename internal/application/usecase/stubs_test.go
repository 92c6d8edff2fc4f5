package usecase_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/application/ports"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// store es la base en memoria compartida por los repos stub. Los repos
// entregan y guardan copias profundas, igual que una base real.
type store struct {
	folios         map[string]int
	clientes       map[string]*entity.Cliente
	proveedores    map[string]*entity.Proveedor
	cotizaciones   map[string]*entity.Cotizacion
	ordenes        map[string]*entity.Orden
	notasVenta     map[string]*entity.NotaVenta
	notasProveedor map[string]*entity.NotaProveedor
	pagosVenta     map[string]*entity.Pago
	pagosProveedor map[string]*entity.Pago
}

func newStore() *store {
	return &store{
		folios:         map[string]int{},
		clientes:       map[string]*entity.Cliente{},
		proveedores:    map[string]*entity.Proveedor{},
		cotizaciones:   map[string]*entity.Cotizacion{},
		ordenes:        map[string]*entity.Orden{},
		notasVenta:     map[string]*entity.NotaVenta{},
		notasProveedor: map[string]*entity.NotaProveedor{},
		pagosVenta:     map[string]*entity.Pago{},
		pagosProveedor: map[string]*entity.Pago{},
	}
}

func (s *store) clone() *store {
	c := newStore()
	for k, v := range s.folios {
		c.folios[k] = v
	}
	for k, v := range s.clientes {
		cl := *v
		c.clientes[k] = &cl
	}
	for k, v := range s.proveedores {
		p := *v
		c.proveedores[k] = &p
	}
	for k, v := range s.cotizaciones {
		c.cotizaciones[k] = cloneCotizacion(v)
	}
	for k, v := range s.ordenes {
		c.ordenes[k] = cloneOrden(v)
	}
	for k, v := range s.notasVenta {
		c.notasVenta[k] = cloneNotaVenta(v)
	}
	for k, v := range s.notasProveedor {
		c.notasProveedor[k] = cloneNotaProveedor(v)
	}
	for k, v := range s.pagosVenta {
		p := *v
		c.pagosVenta[k] = &p
	}
	for k, v := range s.pagosProveedor {
		p := *v
		c.pagosProveedor[k] = &p
	}
	return c
}

func cloneItems(items []*entity.Item) []*entity.Item {
	out := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		c := *it
		out = append(out, &c)
	}
	return out
}

func clonePagos(pagos []*entity.Pago) []*entity.Pago {
	out := make([]*entity.Pago, 0, len(pagos))
	for _, p := range pagos {
		c := *p
		out = append(out, &c)
	}
	return out
}

func cloneCotizacion(c *entity.Cotizacion) *entity.Cotizacion {
	out := *c
	out.Items = cloneItems(c.Items)
	return &out
}

func cloneOrden(o *entity.Orden) *entity.Orden {
	out := *o
	out.Items = cloneItems(o.Items)
	return &out
}

func cloneNotaVenta(n *entity.NotaVenta) *entity.NotaVenta {
	out := *n
	out.Items = cloneItems(n.Items)
	out.Pagos = clonePagos(n.Pagos)
	return &out
}

func cloneNotaProveedor(n *entity.NotaProveedor) *entity.NotaProveedor {
	out := *n
	out.Items = cloneItems(n.Items)
	out.Pagos = clonePagos(n.Pagos)
	return &out
}

// ── TxRunner stub ─────────────────────────────────────────────────────────────

// stubTx emula la transacción: toma un snapshot del store y lo restaura si el
// callback falla, de modo que un error no deja escrituras parciales.
type stubTx struct {
	st *store
}

func (t *stubTx) Run(_ context.Context, fn func(r usecase.Repos) error) error {
	snap := t.st.clone()
	err := fn(usecase.Repos{
		Folios:         &stubFolios{t.st},
		Cotizaciones:   &stubCotizaciones{t.st},
		Ordenes:        &stubOrdenes{t.st},
		NotasVenta:     &stubNotasVenta{t.st},
		NotasProveedor: &stubNotasProveedor{t.st},
	})
	if err != nil {
		*t.st = *snap
	}
	return err
}

// ── Notifier stub ─────────────────────────────────────────────────────────────

type stubNotifier struct {
	events []ports.Event
}

func (n *stubNotifier) Broadcast(ev ports.Event) { n.events = append(n.events, ev) }

func (n *stubNotifier) types() []string {
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

// ── Repos stub ────────────────────────────────────────────────────────────────

type stubFolios struct{ st *store }

func (r *stubFolios) Next(tipo string, anio int) (int, error) {
	key := fmt.Sprintf("%s-%d", tipo, anio)
	r.st.folios[key]++
	return r.st.folios[key], nil
}

type stubClientes struct{ st *store }

func (r *stubClientes) Create(c *entity.Cliente) error {
	cl := *c
	r.st.clientes[c.ID] = &cl
	return nil
}

func (r *stubClientes) GetByID(id string) (*entity.Cliente, error) {
	c, ok := r.st.clientes[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *stubClientes) List(_ string, _, _ int) ([]*entity.Cliente, error) {
	out := make([]*entity.Cliente, 0, len(r.st.clientes))
	for _, c := range r.st.clientes {
		cl := *c
		out = append(out, &cl)
	}
	return out, nil
}

func (r *stubClientes) Update(c *entity.Cliente) error {
	cl := *c
	r.st.clientes[c.ID] = &cl
	return nil
}

func (r *stubClientes) Disable(id string) (bool, error) {
	c, ok := r.st.clientes[id]
	if !ok {
		return false, nil
	}
	c.Activo = false
	return true, nil
}

type stubProveedores struct{ st *store }

func (r *stubProveedores) Create(p *entity.Proveedor) error {
	pv := *p
	r.st.proveedores[p.ID] = &pv
	return nil
}

func (r *stubProveedores) GetByID(id string) (*entity.Proveedor, error) {
	p, ok := r.st.proveedores[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *stubProveedores) List(_ string, _, _ int) ([]*entity.Proveedor, error) {
	out := make([]*entity.Proveedor, 0, len(r.st.proveedores))
	for _, p := range r.st.proveedores {
		pv := *p
		out = append(out, &pv)
	}
	return out, nil
}

func (r *stubProveedores) Update(p *entity.Proveedor) error {
	pv := *p
	r.st.proveedores[p.ID] = &pv
	return nil
}

func (r *stubProveedores) Disable(id string) (bool, error) {
	p, ok := r.st.proveedores[id]
	if !ok {
		return false, nil
	}
	p.Activo = false
	return true, nil
}

type stubCotizaciones struct{ st *store }

func (r *stubCotizaciones) Create(c *entity.Cotizacion) error {
	r.st.cotizaciones[c.ID] = cloneCotizacion(c)
	return nil
}

func (r *stubCotizaciones) GetByID(id string) (*entity.Cotizacion, error) {
	c, ok := r.st.cotizaciones[id]
	if !ok {
		return nil, nil
	}
	return cloneCotizacion(c), nil
}

func (r *stubCotizaciones) GetByFolio(folio string) (*entity.Cotizacion, error) {
	for _, c := range r.st.cotizaciones {
		if c.Folio == folio {
			return cloneCotizacion(c), nil
		}
	}
	return nil, nil
}

func (r *stubCotizaciones) List(_, _ int) ([]*entity.Cotizacion, error) {
	out := make([]*entity.Cotizacion, 0, len(r.st.cotizaciones))
	for _, c := range r.st.cotizaciones {
		out = append(out, cloneCotizacion(c))
	}
	return out, nil
}

func (r *stubCotizaciones) Update(c *entity.Cotizacion) error {
	r.st.cotizaciones[c.ID] = cloneCotizacion(c)
	return nil
}

func (r *stubCotizaciones) CambiarEstado(id, desde, hacia string) (bool, error) {
	c, ok := r.st.cotizaciones[id]
	if !ok || c.Estado != desde {
		return false, nil
	}
	c.Estado = hacia
	return true, nil
}

func (r *stubCotizaciones) MarcarConvertida(id, notaFolio string) (bool, error) {
	c, ok := r.st.cotizaciones[id]
	if !ok || c.NotaFolio != "" || c.Estado != entity.CotizacionPendiente {
		return false, nil
	}
	c.NotaFolio = notaFolio
	c.Estado = entity.CotizacionAceptada
	return true, nil
}

type stubOrdenes struct{ st *store }

func (r *stubOrdenes) Create(o *entity.Orden) error {
	r.st.ordenes[o.ID] = cloneOrden(o)
	return nil
}

func (r *stubOrdenes) GetByID(id string) (*entity.Orden, error) {
	o, ok := r.st.ordenes[id]
	if !ok {
		return nil, nil
	}
	return cloneOrden(o), nil
}

func (r *stubOrdenes) GetByFolio(folio string) (*entity.Orden, error) {
	for _, o := range r.st.ordenes {
		if o.Folio == folio {
			return cloneOrden(o), nil
		}
	}
	return nil, nil
}

func (r *stubOrdenes) List(_, _ int) ([]*entity.Orden, error) {
	out := make([]*entity.Orden, 0, len(r.st.ordenes))
	for _, o := range r.st.ordenes {
		out = append(out, cloneOrden(o))
	}
	return out, nil
}

func (r *stubOrdenes) Update(o *entity.Orden) error {
	r.st.ordenes[o.ID] = cloneOrden(o)
	return nil
}

func (r *stubOrdenes) CambiarEstado(id, desde, hacia string) (bool, error) {
	o, ok := r.st.ordenes[id]
	if !ok || o.Estado != desde {
		return false, nil
	}
	o.Estado = hacia
	return true, nil
}

func (r *stubOrdenes) MarcarFacturada(id, notaFolio string) (bool, error) {
	o, ok := r.st.ordenes[id]
	if !ok || o.NotaFolio != "" || o.Estado != entity.OrdenCompletada {
		return false, nil
	}
	o.NotaFolio = notaFolio
	o.Estado = entity.OrdenFacturada
	return true, nil
}

type stubNotasVenta struct{ st *store }

func (r *stubNotasVenta) Create(n *entity.NotaVenta) error {
	r.st.notasVenta[n.ID] = cloneNotaVenta(n)
	return nil
}

func (r *stubNotasVenta) GetByID(id string) (*entity.NotaVenta, error) {
	n, ok := r.st.notasVenta[id]
	if !ok {
		return nil, nil
	}
	return cloneNotaVenta(n), nil
}

// En memoria no hay filas que bloquear; el stub lee igual que GetByID.
func (r *stubNotasVenta) GetByIDForUpdate(id string) (*entity.NotaVenta, error) {
	return r.GetByID(id)
}

func (r *stubNotasVenta) GetByFolio(folio string) (*entity.NotaVenta, error) {
	for _, n := range r.st.notasVenta {
		if n.Folio == folio {
			return cloneNotaVenta(n), nil
		}
	}
	return nil, nil
}

func (r *stubNotasVenta) List(_, _ int) ([]*entity.NotaVenta, error) {
	out := make([]*entity.NotaVenta, 0, len(r.st.notasVenta))
	for _, n := range r.st.notasVenta {
		out = append(out, cloneNotaVenta(n))
	}
	return out, nil
}

func (r *stubNotasVenta) Update(n *entity.NotaVenta) error {
	r.st.notasVenta[n.ID] = cloneNotaVenta(n)
	return nil
}

func (r *stubNotasVenta) CambiarEstado(id, desde, hacia string) (bool, error) {
	n, ok := r.st.notasVenta[id]
	if !ok || n.Estado != desde {
		return false, nil
	}
	n.Estado = hacia
	return true, nil
}

func (r *stubNotasVenta) CreatePago(p *entity.Pago) error {
	pago := *p
	r.st.pagosVenta[p.ID] = &pago
	if n, ok := r.st.notasVenta[p.NotaID]; ok {
		n.Pagos = append(n.Pagos, &pago)
	}
	return nil
}

func (r *stubNotasVenta) GetPago(pagoID string) (*entity.Pago, error) {
	p, ok := r.st.pagosVenta[pagoID]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *stubNotasVenta) DeletePago(pagoID string) (bool, error) {
	p, ok := r.st.pagosVenta[pagoID]
	if !ok {
		return false, nil
	}
	delete(r.st.pagosVenta, pagoID)
	if n, ok := r.st.notasVenta[p.NotaID]; ok {
		kept := n.Pagos[:0]
		for _, x := range n.Pagos {
			if x.ID != pagoID {
				kept = append(kept, x)
			}
		}
		n.Pagos = kept
	}
	return true, nil
}

func (r *stubNotasVenta) ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error {
	n, ok := r.st.notasVenta[id]
	if !ok {
		return nil
	}
	n.TotalPagado = totalPagado
	n.Saldo = saldo
	n.Estado = estado
	return nil
}

type stubNotasProveedor struct{ st *store }

func (r *stubNotasProveedor) Create(n *entity.NotaProveedor) error {
	r.st.notasProveedor[n.ID] = cloneNotaProveedor(n)
	return nil
}

func (r *stubNotasProveedor) GetByID(id string) (*entity.NotaProveedor, error) {
	n, ok := r.st.notasProveedor[id]
	if !ok {
		return nil, nil
	}
	return cloneNotaProveedor(n), nil
}

func (r *stubNotasProveedor) GetByIDForUpdate(id string) (*entity.NotaProveedor, error) {
	return r.GetByID(id)
}

func (r *stubNotasProveedor) GetByFolio(folio string) (*entity.NotaProveedor, error) {
	for _, n := range r.st.notasProveedor {
		if n.Folio == folio {
			return cloneNotaProveedor(n), nil
		}
	}
	return nil, nil
}

func (r *stubNotasProveedor) List(_, _ int) ([]*entity.NotaProveedor, error) {
	out := make([]*entity.NotaProveedor, 0, len(r.st.notasProveedor))
	for _, n := range r.st.notasProveedor {
		out = append(out, cloneNotaProveedor(n))
	}
	return out, nil
}

func (r *stubNotasProveedor) Update(n *entity.NotaProveedor) error {
	r.st.notasProveedor[n.ID] = cloneNotaProveedor(n)
	return nil
}

func (r *stubNotasProveedor) CambiarEstado(id, desde, hacia string) (bool, error) {
	n, ok := r.st.notasProveedor[id]
	if !ok || n.Estado != desde {
		return false, nil
	}
	n.Estado = hacia
	return true, nil
}

func (r *stubNotasProveedor) CreatePago(p *entity.Pago) error {
	pago := *p
	r.st.pagosProveedor[p.ID] = &pago
	if n, ok := r.st.notasProveedor[p.NotaID]; ok {
		n.Pagos = append(n.Pagos, &pago)
	}
	return nil
}

func (r *stubNotasProveedor) GetPago(pagoID string) (*entity.Pago, error) {
	p, ok := r.st.pagosProveedor[pagoID]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *stubNotasProveedor) DeletePago(pagoID string) (bool, error) {
	p, ok := r.st.pagosProveedor[pagoID]
	if !ok {
		return false, nil
	}
	delete(r.st.pagosProveedor, pagoID)
	if n, ok := r.st.notasProveedor[p.NotaID]; ok {
		kept := n.Pagos[:0]
		for _, x := range n.Pagos {
			if x.ID != pagoID {
				kept = append(kept, x)
			}
		}
		n.Pagos = kept
	}
	return true, nil
}

func (r *stubNotasProveedor) ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error {
	n, ok := r.st.notasProveedor[id]
	if !ok {
		return nil
	}
	n.TotalPagado = totalPagado
	n.Saldo = saldo
	n.Estado = estado
	return nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func seedCliente(st *store, id string) {
	st.clientes[id] = &entity.Cliente{ID: id, Nombre: "Juan Pérez", Activo: true}
}

func seedProveedor(st *store, id string) {
	st.proveedores[id] = &entity.Proveedor{ID: id, Nombre: "Refaccionaria del Norte", Activo: true}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
