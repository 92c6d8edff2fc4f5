package repository

// FolioRepository es el secuenciador de folios. Next devuelve el siguiente
// consecutivo para el par (tipo, año) con un incremento atómico; debe usarse
// dentro de la misma transacción que inserta el documento para que dos
// llamadas concurrentes nunca compartan número.
type FolioRepository interface {
	Next(tipo string, anio int) (int, error)
}
