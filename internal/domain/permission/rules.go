package permission

import "github.com/crucitafashion/crucita-api/internal/domain/entity"

// IsAuthenticated exige un actor autenticado.
func IsAuthenticated(c Check) bool {
	return c.Actor.Authenticated
}

// IsNotAuthenticated exige un actor anónimo. Solo lo usa el auto-registro.
func IsNotAuthenticated(c Check) bool {
	return !c.Actor.Authenticated
}

// IsStaff permite SuperUsuario, Administrador y Vendedor.
func IsStaff(c Check) bool {
	return c.Actor.Authenticated && c.Actor.Group.IsStaff()
}

// IsSuperUserOrAdministrator permite solo SuperUsuario y Administrador.
func IsSuperUserOrAdministrator(c Check) bool {
	if !c.Actor.Authenticated {
		return false
	}
	switch c.Actor.Group {
	case entity.GroupSuperUser, entity.GroupAdministrator:
		return true
	case entity.GroupSeller, entity.GroupClient, entity.GroupUnknown:
		return false
	}
	return false
}

// IsSeller permite solo Vendedor.
func IsSeller(c Check) bool {
	if !c.Actor.Authenticated {
		return false
	}
	switch c.Actor.Group {
	case entity.GroupSeller:
		return true
	case entity.GroupSuperUser, entity.GroupAdministrator, entity.GroupClient, entity.GroupUnknown:
		return false
	}
	return false
}

// AdministratorCannotActOnPeers: un Administrador no ve, modifica ni elimina a un
// SuperUsuario ni a otro Administrador.
func AdministratorCannotActOnPeers(c Check) bool {
	if c.Actor.Group != entity.GroupAdministrator {
		return true
	}
	return !c.Target.Group.IsElevated()
}

// AdministratorCannotGrantElevated: un Administrador no puede crear SuperUsuarios ni Administradores.
func AdministratorCannotGrantElevated(c Check) bool {
	if c.Actor.Group != entity.GroupAdministrator {
		return true
	}
	return !c.RequestedGroup.IsElevated()
}

// NotSelf: nadie actúa sobre sí mismo por la vía administrativa (ni siquiera el SuperUsuario).
func NotSelf(c Check) bool {
	return c.Actor.ID != c.Target.ID
}

// TargetIsClient: el objetivo debe ser un Cliente.
func TargetIsClient(c Check) bool {
	switch c.Target.Group {
	case entity.GroupClient:
		return true
	case entity.GroupSuperUser, entity.GroupAdministrator, entity.GroupSeller, entity.GroupUnknown:
		return false
	}
	return false
}

// OwnerOnly: el objetivo debe ser el propio actor.
func OwnerOnly(c Check) bool {
	return c.Actor.Authenticated && c.Actor.ID == c.Target.ID
}

// StaffOrOwner: el personal ve cualquier recurso; el resto solo los suyos.
func StaffOrOwner(c Check) bool {
	return IsStaff(c) || OwnerOnly(c)
}
