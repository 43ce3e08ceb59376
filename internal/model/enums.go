package model

import (
	"database/sql/driver"
	"fmt"
)

// Closed enumerations stored as their literal string. Scan and Value reject
// anything outside the declared set so bad rows never reach the services.

// EstadoSede is the operational status of a site.
type EstadoSede string

const (
	SedeActiva          EstadoSede = "Active"
	SedeInactiva        EstadoSede = "Inactive"
	SedeEnMantenimiento EstadoSede = "Under Maintenance"
)

// ParseEstadoSede validates s against the known site statuses.
func ParseEstadoSede(s string) (EstadoSede, error) {
	switch e := EstadoSede(s); e {
	case SedeActiva, SedeInactiva, SedeEnMantenimiento:
		return e, nil
	}
	return "", fmt.Errorf("estado de sede desconocido %q", s)
}

func (e EstadoSede) Value() (driver.Value, error) {
	if _, err := ParseEstadoSede(string(e)); err != nil {
		return nil, err
	}
	return string(e), nil
}

func (e *EstadoSede) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	v, err := ParseEstadoSede(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// EstatusCalidad is the quality-control outcome of a batch.
type EstatusCalidad string

const (
	CalidadPaso      EstatusCalidad = "Paso"
	CalidadPendiente EstatusCalidad = "Pendiente"
	CalidadFallo     EstatusCalidad = "Fallo"
)

func ParseEstatusCalidad(s string) (EstatusCalidad, error) {
	switch e := EstatusCalidad(s); e {
	case CalidadPaso, CalidadPendiente, CalidadFallo:
		return e, nil
	}
	return "", fmt.Errorf("estatus de calidad desconocido %q", s)
}

func (e EstatusCalidad) Value() (driver.Value, error) {
	if _, err := ParseEstatusCalidad(string(e)); err != nil {
		return nil, err
	}
	return string(e), nil
}

func (e *EstatusCalidad) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	v, err := ParseEstatusCalidad(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// EstadoLote is the commercial state of a batch.
type EstadoLote string

const (
	LoteVendido  EstadoLote = "Vendido"
	LoteRetirado EstadoLote = "Retirado"
	LoteActivo   EstadoLote = "Activo"
)

func ParseEstadoLote(s string) (EstadoLote, error) {
	switch e := EstadoLote(s); e {
	case LoteVendido, LoteRetirado, LoteActivo:
		return e, nil
	}
	return "", fmt.Errorf("estado de lote desconocido %q", s)
}

func (e EstadoLote) Value() (driver.Value, error) {
	if _, err := ParseEstadoLote(string(e)); err != nil {
		return nil, err
	}
	return string(e), nil
}

func (e *EstadoLote) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	v, err := ParseEstadoLote(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("tipo no soportado %T", src)
	}
}
