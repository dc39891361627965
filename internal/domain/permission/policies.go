package permission

// Políticas por ruta. El orden de los predicados es el orden de evaluación.
var (
	// Productos, categorías, ventas y escritura de apartados.
	StaffPolicy = Policy{
		View: []Predicate{IsAuthenticated, IsStaff},
	}

	// Lectura de apartados: cualquier autenticado; el objeto debe ser propio salvo para el personal.
	LayawayReadPolicy = Policy{
		View:   []Predicate{IsAuthenticated},
		Object: []Predicate{StaffOrOwner},
	}

	RegisterPolicy = Policy{
		View: []Predicate{IsNotAuthenticated},
	}

	AdminCreateUserPolicy = Policy{
		View:   []Predicate{IsAuthenticated, IsSuperUserOrAdministrator},
		Object: []Predicate{AdministratorCannotGrantElevated},
	}

	AdminUserDetailPolicy = Policy{
		View:   []Predicate{IsAuthenticated, IsSuperUserOrAdministrator},
		Object: []Predicate{AdministratorCannotActOnPeers, NotSelf},
	}

	SellerUserDetailPolicy = Policy{
		View:   []Predicate{IsAuthenticated, IsSeller},
		Object: []Predicate{TargetIsClient},
	}

	ProfilePolicy = Policy{
		View:   []Predicate{IsAuthenticated},
		Object: []Predicate{OwnerOnly},
	}

	UserSearchPolicy = Policy{
		View: []Predicate{IsAuthenticated, IsStaff},
	}
)
