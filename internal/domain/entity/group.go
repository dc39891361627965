package entity

import "fmt"

// Group es el rol cerrado de un usuario. El orden de autoridad es
// SuperUsuario > Administrador > {Vendedor, Cliente}; Vendedor y Cliente no son comparables.
type Group uint8

const (
	GroupUnknown Group = iota
	GroupSuperUser
	GroupAdministrator
	GroupSeller
	GroupClient
)

// Nombres persistidos y expuestos en la API.
const (
	GroupNameSuperUser     = "SuperUsuario"
	GroupNameAdministrator = "Administrador"
	GroupNameSeller        = "Vendedor"
	GroupNameClient        = "Cliente"
)

// Groups lista los grupos válidos en orden de autoridad.
var Groups = []Group{GroupSuperUser, GroupAdministrator, GroupSeller, GroupClient}

func (g Group) String() string {
	switch g {
	case GroupSuperUser:
		return GroupNameSuperUser
	case GroupAdministrator:
		return GroupNameAdministrator
	case GroupSeller:
		return GroupNameSeller
	case GroupClient:
		return GroupNameClient
	case GroupUnknown:
		return ""
	}
	return fmt.Sprintf("Group(%d)", uint8(g))
}

// Valid es false para GroupUnknown y valores fuera del enum.
func (g Group) Valid() bool {
	switch g {
	case GroupSuperUser, GroupAdministrator, GroupSeller, GroupClient:
		return true
	case GroupUnknown:
		return false
	}
	return false
}

// IsStaff indica si el grupo pertenece a la administración de la tienda.
func (g Group) IsStaff() bool {
	switch g {
	case GroupSuperUser, GroupAdministrator, GroupSeller:
		return true
	case GroupClient, GroupUnknown:
		return false
	}
	return false
}

// IsElevated indica si el grupo está por encima de los usuarios normales (Vendedor, Cliente).
func (g Group) IsElevated() bool {
	switch g {
	case GroupSuperUser, GroupAdministrator:
		return true
	case GroupSeller, GroupClient, GroupUnknown:
		return false
	}
	return false
}

// ParseGroup convierte el nombre persistido en Group.
func ParseGroup(name string) (Group, error) {
	switch name {
	case GroupNameSuperUser:
		return GroupSuperUser, nil
	case GroupNameAdministrator:
		return GroupAdministrator, nil
	case GroupNameSeller:
		return GroupSeller, nil
	case GroupNameClient:
		return GroupClient, nil
	}
	return GroupUnknown, fmt.Errorf("grupo desconocido %q", name)
}

// MarshalText serializa el grupo con su nombre.
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText acepta únicamente nombres de grupo válidos.
func (g *Group) UnmarshalText(b []byte) error {
	parsed, err := ParseGroup(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
