package api

// Заголовки аутентификации PostgREST-style API
const (
	HeaderAPIKey = "apikey"
	HeaderPrefer = "Prefer"

	// PreferMergeDuplicates превращает POST в upsert по первичному ключу
	PreferMergeDuplicates = "resolution=merge-duplicates"
)

// Роли anon key
const (
	RoleAnon    = "anon"
	RoleService = "service_role"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// KeyResponse представляет выпущенный anon key
type KeyResponse struct {
	Key       string `json:"key"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"` // время жизни ключа в секундах, 0 = бессрочно
}
