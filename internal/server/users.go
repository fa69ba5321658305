package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/services"
)

const usersRoute = "/users"

// UsersHandler serves the /users resource from an in-memory list.
//
//	GET    /users        list
//	POST   /users        create, assigns max(id)+1
//	GET    /users/{id}   read
//	PATCH  /users/{id}   partial update, 404 for an unknown id
//	PUT    /users/{id}   same as PATCH
//	DELETE /users/{id}   200 for any id
//
// Request bodies use the flat contact shape the client sends; responses use the nested remote shape.
type UsersHandler struct {
	mu    sync.RWMutex
	users []services.RemoteUser
}

var _ Handler = (*UsersHandler)(nil)

// NewUsersHandler creates a handler holding a copy of users.
func NewUsersHandler(users []services.RemoteUser) *UsersHandler {
	return &UsersHandler{users: slices.Clone(users)}
}

// Routes returns the HTTP routes this handler serves.
func (h *UsersHandler) Routes() []string {
	return []string{usersRoute, usersRoute + "/"}
}

// ServeHTTP dispatches on the path and method.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, usersRoute), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w)
		case http.MethodPost:
			h.create(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodPatch, http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		w.Header().Set("Allow", "GET, PATCH, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Users returns a copy of the current list.
func (h *UsersHandler) Users() []services.RemoteUser {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.users)
}

func (h *UsersHandler) list(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, h.Users())
}

func (h *UsersHandler) get(w http.ResponseWriter, id int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i := h.indexOf(id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, h.users[i])
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var fields models.ContactFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var next int64 = 1
	for _, u := range h.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}

	user := services.DenormalizeFields(next, fields)
	h.users = append(h.users, user)
	writeJSON(w, http.StatusCreated, user)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var patch models.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}

	h.users[i] = services.ApplyPatch(h.users[i], patch)
	writeJSON(w, http.StatusOK, h.users[i])
}

func (h *UsersHandler) delete(w http.ResponseWriter, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.users = slices.DeleteFunc(h.users, func(u services.RemoteUser) bool { return u.ID == id })
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *UsersHandler) indexOf(id int64) int {
	return slices.IndexFunc(h.users, func(u services.RemoteUser) bool { return u.ID == id })
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
