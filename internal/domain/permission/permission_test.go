package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
)

var (
	superUser = permission.Actor{ID: 1, Group: entity.GroupSuperUser, Authenticated: true}
	admin     = permission.Actor{ID: 2, Group: entity.GroupAdministrator, Authenticated: true}
	seller    = permission.Actor{ID: 3, Group: entity.GroupSeller, Authenticated: true}
	client    = permission.Actor{ID: 4, Group: entity.GroupClient, Authenticated: true}
	anonymous = permission.Anonymous()
)

func subjectOf(a permission.Actor) permission.Subject {
	return permission.Subject{ID: a.ID, Group: a.Group}
}

// authorize aplica vista y luego objeto, igual que un endpoint de detalle.
func authorize(p permission.Policy, actor, target permission.Actor) error {
	return p.Authorize(permission.Check{Actor: actor, Target: subjectOf(target)})
}

func TestStaffPolicy(t *testing.T) {
	assert.NoError(t, permission.StaffPolicy.AuthorizeView(superUser))
	assert.NoError(t, permission.StaffPolicy.AuthorizeView(admin))
	assert.NoError(t, permission.StaffPolicy.AuthorizeView(seller))
	assert.ErrorIs(t, permission.StaffPolicy.AuthorizeView(client), domain.ErrForbidden)
	assert.ErrorIs(t, permission.StaffPolicy.AuthorizeView(anonymous), domain.ErrForbidden)
}

func TestRegisterPolicy_SoloAnonimos(t *testing.T) {
	assert.NoError(t, permission.RegisterPolicy.AuthorizeView(anonymous))
	for _, a := range []permission.Actor{superUser, admin, seller, client} {
		assert.ErrorIs(t, permission.RegisterPolicy.AuthorizeView(a), domain.ErrForbidden, a.Group.String())
	}
}

func TestAdminCreateUserPolicy(t *testing.T) {
	check := func(actor permission.Actor, g entity.Group) error {
		return permission.AdminCreateUserPolicy.Authorize(permission.Check{Actor: actor, RequestedGroup: g})
	}
	for _, g := range entity.Groups {
		assert.NoError(t, check(superUser, g), "SuperUsuario puede crear %s", g)
	}
	assert.ErrorIs(t, check(admin, entity.GroupSuperUser), domain.ErrForbidden)
	assert.ErrorIs(t, check(admin, entity.GroupAdministrator), domain.ErrForbidden)
	assert.NoError(t, check(admin, entity.GroupSeller))
	assert.NoError(t, check(admin, entity.GroupClient))
	assert.ErrorIs(t, check(seller, entity.GroupClient), domain.ErrForbidden)
	assert.ErrorIs(t, check(client, entity.GroupClient), domain.ErrForbidden)
	assert.ErrorIs(t, check(anonymous, entity.GroupClient), domain.ErrForbidden)
}

// Matriz completa de la vista administrativa de detalle de usuario.
func TestAdminUserDetailPolicy_Matriz(t *testing.T) {
	otherAdmin := permission.Actor{ID: 20, Group: entity.GroupAdministrator, Authenticated: true}
	cases := []struct {
		name    string
		actor   permission.Actor
		target  permission.Actor
		allowed bool
	}{
		{"admin ve superusuario", admin, superUser, false},
		{"admin ve otro admin", admin, otherAdmin, false},
		{"admin ve vendedor", admin, seller, true},
		{"admin ve cliente", admin, client, true},
		{"admin se ve a sí mismo", admin, admin, false},
		{"superusuario ve admin", superUser, admin, true},
		{"superusuario ve vendedor", superUser, seller, true},
		{"superusuario se elimina a sí mismo", superUser, superUser, false},
		{"vendedor ve cliente", seller, client, false},
		{"cliente ve cliente", client, client, false},
		{"anónimo", anonymous, client, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorize(permission.AdminUserDetailPolicy, tc.actor, tc.target)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestSellerUserDetailPolicy(t *testing.T) {
	assert.NoError(t, authorize(permission.SellerUserDetailPolicy, seller, client))
	assert.ErrorIs(t, authorize(permission.SellerUserDetailPolicy, seller, admin), domain.ErrForbidden)
	assert.ErrorIs(t, authorize(permission.SellerUserDetailPolicy, seller, superUser), domain.ErrForbidden)
	assert.ErrorIs(t, authorize(permission.SellerUserDetailPolicy, seller, seller), domain.ErrForbidden)
	assert.ErrorIs(t, authorize(permission.SellerUserDetailPolicy, admin, client), domain.ErrForbidden,
		"la vista de vendedor es exclusiva de Vendedor")
}

func TestProfilePolicy_SoloPropio(t *testing.T) {
	for _, a := range []permission.Actor{superUser, admin, seller, client} {
		assert.NoError(t, authorize(permission.ProfilePolicy, a, a))
	}
	assert.ErrorIs(t, authorize(permission.ProfilePolicy, superUser, client), domain.ErrForbidden)
	assert.ErrorIs(t, authorize(permission.ProfilePolicy, anonymous, anonymous), domain.ErrForbidden,
		"el anónimo no tiene perfil aunque los ids coincidan")
}

func TestLayawayReadPolicy(t *testing.T) {
	other := permission.Actor{ID: 40, Group: entity.GroupClient, Authenticated: true}
	assert.NoError(t, authorize(permission.LayawayReadPolicy, seller, client))
	assert.NoError(t, authorize(permission.LayawayReadPolicy, client, client))
	assert.ErrorIs(t, authorize(permission.LayawayReadPolicy, other, client), domain.ErrForbidden)
}

func TestAllows_CortaEnPrimeraNegacion(t *testing.T) {
	var evaluated []string
	deny := func(name string) permission.Predicate {
		return func(permission.Check) bool { evaluated = append(evaluated, name); return false }
	}
	allow := func(name string) permission.Predicate {
		return func(permission.Check) bool { evaluated = append(evaluated, name); return true }
	}
	ok := permission.Allows([]permission.Predicate{allow("a"), deny("b"), allow("c")}, permission.Check{})
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, evaluated)
}
