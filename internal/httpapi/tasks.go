package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/taskboard/internal/tasks"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req tasks.CreateRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.store.Create(r.Context(), req)
	if err != nil {
		var ve *tasks.ValidationError
		if errors.As(err, &ve) {
			respondError(w, http.StatusBadRequest, ve.Message)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.countMutation("created")
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req tasks.UpdateRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.store.Update(r.Context(), id, req)
	if err != nil {
		// A malformed id answers 404 like an unknown one. Existing clients
		// depend on the status; the messages stay distinct.
		if errors.Is(err, tasks.ErrInvalidID) {
			respondError(w, http.StatusNotFound, "Invalid task ID")
			return
		}
		if errors.Is(err, tasks.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		var ve *tasks.ValidationError
		if errors.As(err, &ve) {
			respondError(w, http.StatusBadRequest, ve.Message)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.countMutation("updated")
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, tasks.ErrInvalidID) {
			respondError(w, http.StatusNotFound, "Invalid task ID")
			return
		}
		if errors.Is(err, tasks.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("delete task %s failed: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	s.countMutation("deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (s *Server) countMutation(action string) {
	if s.metrics != nil {
		s.metrics.TaskMutations.WithLabelValues(action).Inc()
	}
}
