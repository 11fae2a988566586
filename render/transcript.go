package render

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"madn/board"
	"madn/game"
)

const (
	transcriptTimeFormat = "2006/01/02 15:04:05"
	defaultMaxSize       = 10 // MB
	defaultMaxAge        = 7  // days
	defaultMaxBackups    = 3
)

// Transcript writes a human readable log of one match to a rotating file.
type Transcript struct {
	logger *zap.Logger
	file   *lumberjack.Logger
}

func NewTranscript(filename string) *Transcript {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeLevel = nil
	encoderCfg.EncodeTime = transcriptTimeEncoder
	encoderCfg.ConsoleSeparator = " "
	lj := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    defaultMaxSize,
		MaxAge:     defaultMaxAge,
		MaxBackups: defaultMaxBackups,
		LocalTime:  true,
		Compress:   true,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(lj), zapcore.InfoLevel)
	return &Transcript{logger: zap.New(core), file: lj}
}

func transcriptTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format(transcriptTimeFormat) + "]")
}

func (t *Transcript) DrawBoard(size board.Size) {
	t.logger.Sugar().Infof("<board> size[%s] unit[%d]", size, size.Unit())
}

func (t *Transcript) PlacePiece(v game.PieceView) {
	t.logger.Sugar().Infof("<piece> %s#%d at[%d %d] heading[%d] steps[%d] %s",
		v.Color, v.Slot, v.Pos.X, v.Pos.Y, v.Heading, v.Steps, v.State)
}

func (t *Transcript) DrawWinner(c board.Color) {
	t.logger.Sugar().Infof("<winner> %s", c)
}

// Sync flushes buffered entries to the file.
func (t *Transcript) Sync() error {
	return t.logger.Sync()
}

// Close flushes the transcript and closes its file.
func (t *Transcript) Close() error {
	if err := t.Sync(); err != nil {
		return err
	}
	return t.file.Close()
}
