package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-multibodega/internal/tenant"
)

func TestSchemaFor(t *testing.T) {
	assert.Equal(t, "inventario_principal", tenant.SchemaFor(tenant.Principal))
	assert.Equal(t, "inventario_sucursal", tenant.SchemaFor(tenant.Sucursal))
	// Clave desconocida cae al esquema por defecto, nunca a un esquema vacío.
	assert.Equal(t, "inventario_principal", tenant.SchemaFor("otra-cosa"))
	assert.Equal(t, "inventario_principal", tenant.SchemaFor(""))
}

func TestIsValid(t *testing.T) {
	assert.True(t, tenant.IsValid(tenant.Principal))
	assert.True(t, tenant.IsValid(tenant.Sucursal))
	assert.False(t, tenant.IsValid("principal "))
	assert.False(t, tenant.IsValid("PRINCIPAL"))
	assert.False(t, tenant.IsValid(""))
}

// La precedencia exacta: usuario autenticado > middleware > por defecto.
func TestResolve_Precedencia(t *testing.T) {
	cases := []struct {
		name       string
		userHint   string
		middleware string
		want       string
	}{
		{"usuario gana sobre middleware", tenant.Sucursal, tenant.Principal, tenant.Sucursal},
		{"middleware si no hay usuario", "", tenant.Sucursal, tenant.Sucursal},
		{"default si no hay pistas", "", "", tenant.Principal},
		{"usuario inválido cede al middleware", "fantasma", tenant.Sucursal, tenant.Sucursal},
		{"ambas inválidas caen al default", "fantasma", "otro", tenant.Principal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tenant.Resolve(tc.userHint, tc.middleware))
		})
	}
}

func TestDefaultOr(t *testing.T) {
	assert.Equal(t, tenant.Sucursal, tenant.DefaultOr(tenant.Sucursal))
	// Una clave inválida o vacía cae al default compilado.
	assert.Equal(t, tenant.Default, tenant.DefaultOr("fantasma"))
	assert.Equal(t, tenant.Default, tenant.DefaultOr(""))
}

func TestResolveWithDefault(t *testing.T) {
	// Mismo orden de precedencia que Resolve, pero con default configurable.
	assert.Equal(t, tenant.Principal, tenant.ResolveWithDefault(tenant.Principal, tenant.Sucursal, tenant.Sucursal))
	assert.Equal(t, tenant.Principal, tenant.ResolveWithDefault("", tenant.Principal, tenant.Sucursal))
	assert.Equal(t, tenant.Sucursal, tenant.ResolveWithDefault("", "", tenant.Sucursal))
	// Default inválido cae al default compilado.
	assert.Equal(t, tenant.Default, tenant.ResolveWithDefault("", "", "fantasma"))
}

func TestAvailable(t *testing.T) {
	infos := tenant.Available()
	assert.Len(t, infos, 2)
	for _, info := range infos {
		assert.True(t, tenant.IsValid(info.ID))
	}
}
