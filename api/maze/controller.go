package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze3d/api/identity"
	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultRecentLimit = 10

// MazeController serves maze generation and the mazes designers save.
type MazeController struct {
	mazes i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(m i.MazeService) *MazeController {
	return &MazeController{mazes: m}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/generate", mc.generate)
		mazes.GET("/recent", mc.recent)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.save)
		mazes.GET("", mc.mine)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/layers/:Y", mc.layer)
	}
}

// generate carves a maze without storing it.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := mc.mazes.Generate(ctx, request.params())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response, err := newMazeResponse(snap)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// recent lists the latest generations.
func (mc *MazeController) recent(ctx *gin.Context) {
	limit := int64(defaultRecentLimit)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	keys, total, err := mc.mazes.Recent(ctx, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &RecentResponse{Keys: keys, Total: total})
}

// save generates a maze and stores it for the authenticated designer.
func (mc *MazeController) save(ctx *gin.Context) {
	ownerID, ok := identity.DesignerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request SaveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.mazes.Save(ctx, ownerID, request.Name, request.Maze.params())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response, err := newRecordResponse(record)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// mine lists the authenticated designer's mazes.
func (mc *MazeController) mine(ctx *gin.Context) {
	ownerID, ok := identity.DesignerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	records, err := mc.mazes.ByOwner(ctx, ownerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := make([]*RecordResponse, 0, len(records))
	for _, r := range records {
		rr, err := newRecordResponse(r)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		response = append(response, rr)
	}
	ctx.JSON(http.StatusOK, response)
}

// byID returns one of the designer's mazes.
func (mc *MazeController) byID(ctx *gin.Context) {
	record, ok := mc.ownedRecord(ctx)
	if !ok {
		return
	}

	response, err := newRecordResponse(record)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// layer renders one height layer of a saved maze as text.
func (mc *MazeController) layer(ctx *gin.Context) {
	y, err := strconv.Atoi(ctx.Param("Y"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "layer must be an integer"})
		return
	}

	record, ok := mc.ownedRecord(ctx)
	if !ok {
		return
	}

	grid, err := record.Maze.Restore()
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	text, err := grid.Layer(y)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, text)
}

// ownedRecord loads the record named by the ID param and checks it belongs to the caller.
// It writes the error response itself and reports whether the handler may continue.
func (mc *MazeController) ownedRecord(ctx *gin.Context) (*dmn.MazeRecord, bool) {
	ownerID, ok := identity.DesignerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return nil, false
	}

	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return nil, false
	}

	record, err := mc.mazes.ByID(ctx, id)
	if err != nil {
		abortWithError(ctx, err)
		return nil, false
	}
	if record.OwnerID != ownerID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "maze belongs to another designer"})
		return nil, false
	}
	return record, true
}

// abortWithError maps service errors to HTTP statuses.
func abortWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrStartOutOfBounds),
		errors.Is(err, maze.ErrInvalidUnlockDepth),
		errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, dmn.ErrMazeTooLarge),
		errors.Is(err, dmn.ErrMazeNameRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
