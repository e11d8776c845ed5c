package mazeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

var (
	ErrNilSessionManager = errors.New("maze session manager is required")
)

// MazeController serves maze sessions, completed runs and leaderboards.
type MazeController struct {
	sessions    i.MazeSessionManager
	leaderboard i.Leaderboard
	runRepo     i.RunRepo
	upgrader    websocket.Upgrader
	logger      logger.Logger
}

// Config holds the dependencies of a MazeController. Leaderboard and RunRepo
// may be nil, which disables their routes.
type Config struct {
	Sessions    i.MazeSessionManager
	Leaderboard i.Leaderboard
	RunRepo     i.RunRepo
	Logger      logger.Logger
	CheckOrigin func(r *http.Request) bool // Websocket origin check, nil accepts same-origin only.
}

// NewMazeController creates a MazeController.
func NewMazeController(c *Config) (*MazeController, error) {
	if c == nil || c.Sessions == nil {
		return nil, ErrNilSessionManager
	}

	l := c.Logger
	if l == nil {
		l = logger.Discard()
	}

	return &MazeController{
		sessions:    c.Sessions,
		leaderboard: c.Leaderboard,
		runRepo:     c.RunRepo,
		upgrader:    websocket.Upgrader{CheckOrigin: c.CheckOrigin},
		logger:      l,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	if mc.leaderboard != nil {
		route.GET("/leaderboard/:size", mc.top)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/:id", mc.get)
		mazes.POST("/:id/moves", mc.move)
		mazes.POST("/:id/start", mc.start)
		mazes.DELETE("/:id", mc.close)
		mazes.GET("/:id/play", mc.play)
	}

	if mc.runRepo != nil {
		route.GET("/runs", mc.runs)
	}
}

// create starts a new maze session for the caller.
func (mc *MazeController) create(ctx *gin.Context) {
	playerID, ok := mc.player(ctx)
	if !ok {
		return
	}

	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := mc.sessions.NewSession(playerID, request.Size)
	if err != nil {
		mc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, session.Snapshot())
}

// get returns the session snapshot as JSON or, on request, as protobuf.
func (mc *MazeController) get(ctx *gin.Context) {
	session, ok := mc.session(ctx)
	if !ok {
		return
	}
	snapshot := session.Snapshot()

	switch ctx.NegotiateFormat(binding.MIMEJSON, binding.MIMEPROTOBUF) {
	case binding.MIMEPROTOBUF:
		msg, err := snapshotMessage(snapshot)
		if err != nil {
			mc.logger.Error(fmt.Sprintf("encoding snapshot of session %s: %s", snapshot.ID, err))
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not encode snapshot"})
			return
		}
		ctx.ProtoBuf(http.StatusOK, msg)
	default:
		ctx.JSON(http.StatusOK, snapshot)
	}
}

// move applies one movement request.
func (mc *MazeController) move(ctx *gin.Context) {
	playerID, sessionID, ok := mc.ids(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := mc.applyMove(ctx, sessionID, playerID, request)
	if err != nil {
		mc.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) applyMove(ctx *gin.Context, sessionID, playerID uuid.UUID, request MoveRequest) (MoveResponse, error) {
	axis, err := game.ParseAxis(request.Axis)
	if err != nil {
		return MoveResponse{}, err
	}

	result, err := mc.sessions.Move(ctx.Request.Context(), sessionID, playerID, axis, request.Delta)
	if err != nil {
		return MoveResponse{}, err
	}
	return newMoveResponse(result), nil
}

// start records the session start time.
func (mc *MazeController) start(ctx *gin.Context) {
	playerID, sessionID, ok := mc.ids(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Start(sessionID, playerID); err != nil {
		mc.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// close discards the session.
func (mc *MazeController) close(ctx *gin.Context) {
	playerID, sessionID, ok := mc.ids(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Close(sessionID, playerID); err != nil {
		mc.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// play upgrades to a websocket that takes MoveRequest frames and answers
// each with a MoveResponse or ErrorResponse. The socket closes once the exit
// is reached.
func (mc *MazeController) play(ctx *gin.Context) {
	session, ok := mc.session(ctx)
	if !ok {
		return
	}

	conn, err := mc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("upgrading session %s: %s", session.ID(), err))
		return
	}
	defer conn.Close()

	mc.logger.Info(fmt.Sprintf("player %s connected to session %s", session.PlayerID(), session.ID()))
	for {
		var request MoveRequest
		if err := conn.ReadJSON(&request); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				mc.logger.Warning(fmt.Sprintf("reading from session %s: %s", session.ID(), err))
			}
			return
		}

		response, err := mc.applyMove(ctx, session.ID(), session.PlayerID(), request)
		if err != nil {
			if werr := conn.WriteJSON(ErrorResponse{Error: err.Error()}); werr != nil {
				return
			}
			if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, game.ErrSessionFinished) {
				return
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			return
		}
		if response.Finished {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "exit reached"))
			return
		}
	}
}

// top returns the fastest completions for a maze size.
func (mc *MazeController) top(ctx *gin.Context) {
	size, err := strconv.Atoi(ctx.Param("size"))
	if err != nil || size <= 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "size must be a positive integer"})
		return
	}
	limit, ok := mc.limit(ctx)
	if !ok {
		return
	}

	entries, err := mc.leaderboard.Top(ctx.Request.Context(), size, limit)
	if err != nil {
		mc.logger.Error(fmt.Sprintf("reading leaderboard for size %d: %s", size, err))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, newLeaderboardResponse(entries))
}

// runs returns the caller's most recent completed runs.
func (mc *MazeController) runs(ctx *gin.Context) {
	playerID, ok := mc.player(ctx)
	if !ok {
		return
	}
	limit, ok := mc.limit(ctx)
	if !ok {
		return
	}

	runs, err := mc.runRepo.ByPlayer(ctx.Request.Context(), playerID, limit)
	if err != nil {
		mc.logger.Error(fmt.Sprintf("listing runs of player %s: %s", playerID, err))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list runs"})
		return
	}
	ctx.JSON(http.StatusOK, newRunsResponse(runs))
}

func (mc *MazeController) limit(ctx *gin.Context) (int64, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 || limit > maxListLimit {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("limit must be between 1 and %d", maxListLimit)})
		return 0, false
	}
	return limit, true
}

func (mc *MazeController) player(ctx *gin.Context) (uuid.UUID, bool) {
	playerID, err := identity.UserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown user"})
		return uuid.Nil, false
	}
	return playerID, true
}

func (mc *MazeController) ids(ctx *gin.Context) (playerID, sessionID uuid.UUID, ok bool) {
	playerID, ok = mc.player(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

func (mc *MazeController) session(ctx *gin.Context) (*game.Session, bool) {
	playerID, sessionID, ok := mc.ids(ctx)
	if !ok {
		return nil, false
	}
	session, err := mc.sessions.Session(sessionID, playerID)
	if err != nil {
		mc.writeError(ctx, err)
		return nil, false
	}
	return session, true
}

func (mc *MazeController) writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrSessionFinished):
		status = http.StatusConflict
	case errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, service.ErrMazeTooSmall),
		errors.Is(err, maze.ErrInvalidSize),
		errors.Is(err, game.ErrInvalidAxis):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		mc.logger.Error(fmt.Sprintf("%s %s: %s", ctx.Request.Method, ctx.FullPath(), err))
		ctx.JSON(status, ErrorResponse{Error: "internal error"})
		return
	}
	ctx.JSON(status, ErrorResponse{Error: err.Error()})
}
