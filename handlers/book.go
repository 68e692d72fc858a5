package handlers

import (
	"net/http"
	"strings"

	"bookcircle/models"
	"bookcircle/services/book"
	"bookcircle/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Max accepted cover image size, 8 MiB.
const maxCoverSize = 8 << 20

// BookHandler encapsulates book listing endpoints.
type BookHandler struct {
	BookService    book.BookService
	StorageService storage.StorageService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bs book.BookService, ss storage.StorageService) *BookHandler {
	return &BookHandler{BookService: bs, StorageService: ss}
}

// CreateBookHandler handles POST /books.
func (h *BookHandler) CreateBookHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid book create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	bk, err := h.BookService.Create(userID, req)
	if err != nil {
		logger.Error("Book create failed", zap.String("ownerID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// UpdateBookHandler handles PUT /books/:id. Owner only.
func (h *BookHandler) UpdateBookHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID := c.Param("id")

	var req models.BookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	bk, err := h.BookService.Update(userID, bookID, req)
	if err != nil {
		logger.Error("Book update failed", zap.String("bookID", bookID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// DeleteBookHandler handles DELETE /books/:id. Owner only; blocked while the
// book is out on loan.
func (h *BookHandler) DeleteBookHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID := c.Param("id")

	if err := h.BookService.Delete(userID, bookID); err != nil {
		logger.Error("Book delete failed", zap.String("bookID", bookID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// GetBookHandler handles GET /books/:id.
func (h *BookHandler) GetBookHandler(c *gin.Context) {
	bk, err := h.BookService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListSocietyBooksHandler handles GET /societies/:id/books.
// Pass ?available=true to list only books open for borrowing.
func (h *BookHandler) ListSocietyBooksHandler(c *gin.Context) {
	societyID := c.Param("id")
	availableOnly := strings.EqualFold(c.Query("available"), "true")

	books, err := h.BookService.ListBySociety(societyID, availableOnly)
	if err != nil {
		getLogger(c).Error("List society books failed", zap.String("societyID", societyID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// ListMyBooksHandler handles GET /books/mine.
func (h *BookHandler) ListMyBooksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	books, err := h.BookService.ListByOwner(userID)
	if err != nil {
		getLogger(c).Error("List owned books failed", zap.String("ownerID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// UploadBookCoverHandler handles POST /books/:id/cover with a multipart
// "cover" file. The image lands in Cloudinary and the book keeps the URL.
func (h *BookHandler) UploadBookCoverHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID := c.Param("id")

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cover file"})
		return
	}
	if fileHeader.Size > maxCoverSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cover image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded cover", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	publicID := bookID + "-" + uuid.NewString()
	url, err := h.StorageService.UploadImage(c.Request.Context(), file, "book_covers", publicID)
	if err != nil {
		logger.Error("Cover upload failed", zap.String("bookID", bookID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	if err := h.BookService.SetCover(userID, bookID, url); err != nil {
		logger.Error("Failed to store cover URL", zap.String("bookID", bookID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coverUrl": url})
}

// LookupISBNHandler handles GET /books/lookup/:isbn against the catalog.
func (h *BookHandler) LookupISBNHandler(c *gin.Context) {
	isbn := c.Param("isbn")
	meta, err := h.BookService.Lookup(isbn)
	if err != nil {
		getLogger(c).Warn("ISBN lookup failed", zap.String("isbn", isbn), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meta)
}
