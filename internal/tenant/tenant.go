// Package tenant resuelve la clave lógica de tenant hacia el esquema físico de
// PostgreSQL. Es una tabla estática: cambiar el conjunto de tenants es un
// cambio de configuración, no una operación en runtime.
package tenant

// Claves de tenant conocidas.
const (
	Principal = "principal"
	Sucursal  = "sucursal"

	// Default se usa cuando ninguna pista del request es válida.
	Default = Principal
)

// schemaMap mapea clave de tenant a esquema. Es la única fuente de nombres de
// esquema: ningún nombre de esquema proviene jamás de entrada del caller.
var schemaMap = map[string]string{
	Principal: "inventario_principal",
	Sucursal:  "inventario_sucursal",
}

// Info describe un tenant disponible para la UI.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// IsValid indica si la clave pertenece a la whitelist.
func IsValid(key string) bool {
	_, ok := schemaMap[key]
	return ok
}

// SchemaFor devuelve el esquema del tenant; claves desconocidas caen al
// esquema del tenant por defecto.
func SchemaFor(key string) string {
	if s, ok := schemaMap[key]; ok {
		return s
	}
	return schemaMap[Default]
}

// Resolve aplica la precedencia de pistas: usuario autenticado > middleware >
// por defecto. Una pista inválida no es error; simplemente cede el turno a la
// siguiente.
func Resolve(userHint, middlewareHint string) string {
	if IsValid(userHint) {
		return userHint
	}
	if IsValid(middlewareHint) {
		return middlewareHint
	}
	return Default
}

// DefaultOr valida un default configurado (TENANT_DEFAULT); si no pertenece a
// la whitelist se usa el default compilado.
func DefaultOr(key string) string {
	if IsValid(key) {
		return key
	}
	return Default
}

// ResolveWithDefault es Resolve con el tenant por defecto configurable.
func ResolveWithDefault(userHint, middlewareHint, def string) string {
	if IsValid(userHint) {
		return userHint
	}
	if IsValid(middlewareHint) {
		return middlewareHint
	}
	return DefaultOr(def)
}

// Available lista los tenants configurados.
func Available() []Info {
	return []Info{
		{ID: Principal, Name: "Bodega Principal"},
		{ID: Sucursal, Name: "Bodega Sucursal"},
	}
}
