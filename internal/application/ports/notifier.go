package ports

// Event es el evento de cambio que se difunde a los clientes GUI conectados
// después de cada commit exitoso. Type sigue el formato
// "<entidad>_<creado|actualizado|cancelada>".
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Notifier difunde eventos post-commit. Es fire-and-forget: la entrega no
// está garantizada y el núcleo nunca depende de que un evento haya llegado;
// es solo una señal de refresco para lectores con snapshot viejo.
type Notifier interface {
	Broadcast(ev Event)
}

// NopNotifier descarta todos los eventos (tests, herramientas de línea de comandos).
type NopNotifier struct{}

func (NopNotifier) Broadcast(Event) {}
