package wire

import (
	"vet-clinic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser mounts back-office account management. Access control belongs
// to the session layer in front of this service; mount it on this group.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)            // GET /api/admin/users?page=1&per_page=10
		r.Post("/", userHandler.CreateUser)            // POST /api/admin/users
		r.Get("/{id}", userHandler.GetUser)            // GET /api/admin/users/{user-id}
		r.Put("/{id}", userHandler.UpdateUser)         // PUT /api/admin/users/{user-id}
		r.Patch("/{id}/active", userHandler.SetActive) // PATCH /api/admin/users/{user-id}/active
		r.Delete("/{id}", userHandler.DeleteUser)      // DELETE /api/admin/users/{user-id}
	})
}
