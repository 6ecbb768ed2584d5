package handlers

import (
	"errors"
	"log"
	"net/http"

	"commentbox/internal/models"
	"commentbox/internal/repository"
	"commentbox/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users repository.UserRepository
}

func NewAuthHandler(users repository.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Usuario y contraseña son obligatorios."})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Error al generar el hash de contraseña: %v", err)
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Hubo un problema al registrarte. Inténtalo de nuevo más tarde."})
		return
	}

	user := &models.User{Username: username, Password: hash}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			Render(c, http.StatusConflict, "auth/register.html", gin.H{"Error": "Ese nombre de usuario ya está en uso."})
			return
		}
		log.Printf("Error durante el registro: %v", err)
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Hubo un problema al registrarte. Inténtalo de nuevo más tarde."})
		return
	}

	// Registration logs the user straight in
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		log.Printf("Error al guardar la sesión: %v", err)
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.GetByUsername(username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Error durante el inicio de sesión: %v", err)
		}
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Por favor verifica tu nombre de usuario y contraseña."})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Por favor verifica tu nombre de usuario y contraseña."})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		log.Printf("Error al guardar la sesión: %v", err)
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("Error al guardar la sesión: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Index(c *gin.Context) {
	user := CurrentUser(c)
	Render(c, http.StatusOK, "index.html", gin.H{"Username": user.Username})
}
