package glide

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Config holds the designer-tunable parameters of a scroll-snap setup. It is
// plain configuration: nothing here changes at runtime.
type Config struct {
	Axis     ScrollAxis       `yaml:"axis"`
	Scroll   ScrollConfig     `yaml:"scroll"`
	Snap     SnapConfig       `yaml:"snap"`
	Boundary BoundaryConfig   `yaml:"boundary"`
	Clips    ClipsConfig      `yaml:"clips"`
	Layout   *LayoutConfig    `yaml:"layout,omitempty"`
	Intro    *IntroConfig     `yaml:"intro,omitempty"`
	Relative []RelativeConfig `yaml:"relative,omitempty"`
}

// ScrollConfig tunes the ScrollView physics.
type ScrollConfig struct {
	Inertia          bool    `yaml:"inertia"`
	DecelerationRate float64 `yaml:"deceleration_rate"`
	DragDeadZone     float64 `yaml:"drag_dead_zone"`
}

// SnapConfig tunes the SnapController.
type SnapConfig struct {
	Mode          string  `yaml:"mode"`    // "nearest" | "step"
	Release       string  `yaml:"release"` // "immediate" | "when_stopped"
	Duration      float32 `yaml:"duration"`
	Ease          string  `yaml:"ease"`
	StopThreshold float64 `yaml:"stop_threshold"`
	SettleDelay   float32 `yaml:"settle_delay"`
	DefaultStep   float64 `yaml:"default_step"`
	CenterOnStart bool    `yaml:"center_on_start"`
	StartIndex    int     `yaml:"start_index"`
}

// BoundaryConfig selects the boundary policy.
type BoundaryConfig struct {
	Policy string `yaml:"policy"` // "none" | "lock_drag" | "suppress_settle"
	Edges  string `yaml:"edges"`  // "both" | "start" | "end"
}

// ClipsConfig names the clips played by the AnimationBinder.
type ClipsConfig struct {
	Active        string  `yaml:"active,omitempty"`
	Inactive      string  `yaml:"inactive,omitempty"`
	DragStart     string  `yaml:"drag_start,omitempty"`
	Settle        string  `yaml:"settle,omitempty"`
	DragLeft      string  `yaml:"drag_left,omitempty"`
	DragRight     string  `yaml:"drag_right,omitempty"`
	DragUp        string  `yaml:"drag_up,omitempty"`
	DragDown      string  `yaml:"drag_down,omitempty"`
	DragThreshold float64 `yaml:"drag_threshold,omitempty"`
}

// LayoutConfig describes a GridLayout.
type LayoutConfig struct {
	CellWidth   float64 `yaml:"cell_width"`
	CellHeight  float64 `yaml:"cell_height"`
	SpacingX    float64 `yaml:"spacing_x"`
	SpacingY    float64 `yaml:"spacing_y"`
	Columns     int     `yaml:"columns"`
	CenterCells bool    `yaml:"center_cells"`
	Padding     Padding `yaml:"padding"`
}

// IntroConfig describes the content intro motion played on start.
type IntroConfig struct {
	FromX    float64    `yaml:"from_x"`
	FromY    float64    `yaml:"from_y"`
	Duration float32    `yaml:"duration"`
	Curve    []Keyframe `yaml:"curve,omitempty"`
	Ease     string     `yaml:"ease,omitempty"`
}

// RelativeConfig describes one viewport-relative transform. Target names a
// node in the view; an empty Target drives the content node.
type RelativeConfig struct {
	Target   string     `yaml:"target,omitempty"`
	Channel  string     `yaml:"channel"` // "scale" | "rotation" | "alpha"
	From     float64    `yaml:"from"`
	To       float64    `yaml:"to"`
	Curve    []Keyframe `yaml:"curve,omitempty"`
	Ease     string     `yaml:"ease,omitempty"` // curve shape when Curve is empty
	Duration float32    `yaml:"duration,omitempty"`
}

// DefaultConfig returns a horizontal, immediately snapping configuration.
func DefaultConfig() Config {
	return Config{
		Axis: AxisHorizontal,
		Scroll: ScrollConfig{
			Inertia:          true,
			DecelerationRate: defaultDecelerationRate,
			DragDeadZone:     defaultDragDeadZone,
		},
		Snap: SnapConfig{
			Mode:          "nearest",
			Release:       "immediate",
			Duration:      0.25,
			Ease:          "outCubic",
			StopThreshold: 10,
			SettleDelay:   0.15,
			DefaultStep:   100,
		},
		Boundary: BoundaryConfig{Policy: "none", Edges: "both"},
	}
}

// LoadConfig parses YAML over DefaultConfig and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file. A missing file yields
// DefaultConfig without error.
func LoadConfigFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("config file not found; using defaults", "path", path)
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.SnapOptions(); err != nil {
		errs = append(errs, err)
	}
	if c.Scroll.DecelerationRate < 0 || c.Scroll.DecelerationRate >= 1 {
		errs = append(errs, fmt.Errorf("scroll.deceleration_rate %v: must be in [0, 1)", c.Scroll.DecelerationRate))
	}
	if c.Snap.StopThreshold < 0 {
		errs = append(errs, fmt.Errorf("snap.stop_threshold %v: must not be negative", c.Snap.StopThreshold))
	}
	if c.Layout != nil && (c.Layout.CellWidth <= 0 || c.Layout.CellHeight <= 0) {
		errs = append(errs, fmt.Errorf("layout: cell size %vx%v must be positive", c.Layout.CellWidth, c.Layout.CellHeight))
	}
	if c.Intro != nil && c.Intro.Ease != "" {
		if _, err := ParseEase(c.Intro.Ease); err != nil {
			errs = append(errs, fmt.Errorf("intro.ease: %w", err))
		}
	}
	for i, r := range c.Relative {
		if _, err := parseChannel(r.Channel); err != nil {
			errs = append(errs, fmt.Errorf("relative[%d].channel: %w", i, err))
		}
		if r.Ease != "" {
			if _, err := ParseEase(r.Ease); err != nil {
				errs = append(errs, fmt.Errorf("relative[%d].ease: %w", i, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SnapOptions converts the snap and boundary sections.
func (c Config) SnapOptions() (SnapOptions, error) {
	o := SnapOptions{
		Axis:          c.Axis,
		Duration:      c.Snap.Duration,
		StopThreshold: c.Snap.StopThreshold,
		SettleDelay:   c.Snap.SettleDelay,
		DefaultStep:   c.Snap.DefaultStep,
		CenterOnStart: c.Snap.CenterOnStart,
		StartIndex:    c.Snap.StartIndex,
	}
	var err error
	if o.Mode, err = lookup("snap.mode", c.Snap.Mode, snapModes); err != nil {
		return o, err
	}
	if o.Release, err = lookup("snap.release", c.Snap.Release, releaseModes); err != nil {
		return o, err
	}
	if o.Boundary, err = lookup("boundary.policy", c.Boundary.Policy, boundaryPolicies); err != nil {
		return o, err
	}
	if o.Edges, err = lookup("boundary.edges", c.Boundary.Edges, boundaryEdges); err != nil {
		return o, err
	}
	if o.Ease, err = ParseEase(c.Snap.Ease); err != nil {
		return o, fmt.Errorf("snap.ease: %w", err)
	}
	return o, nil
}

// BinderClips converts the clips section.
func (c Config) BinderClips() BinderClips {
	return BinderClips{
		Active:           c.Clips.Active,
		Inactive:         c.Clips.Inactive,
		DragStart:        c.Clips.DragStart,
		Settle:           c.Clips.Settle,
		DragLeft:         c.Clips.DragLeft,
		DragRight:        c.Clips.DragRight,
		DragUp:           c.Clips.DragUp,
		DragDown:         c.Clips.DragDown,
		DragThreshold:    c.Clips.DragThreshold,
		UseDragThreshold: c.Clips.DragThreshold > 0,
	}
}

// GridLayout converts the layout section, or returns nil when absent.
func (c Config) GridLayout() *GridLayout {
	if c.Layout == nil {
		return nil
	}
	l := c.Layout
	return &GridLayout{
		Axis:        c.Axis,
		CellSize:    Vec2{l.CellWidth, l.CellHeight},
		Spacing:     Vec2{l.SpacingX, l.SpacingY},
		Padding:     l.Padding,
		Columns:     l.Columns,
		CenterCells: l.CenterCells,
	}
}

// configCurve returns the configured curve: keyframes win over an ease name.
func configCurve(keys []Keyframe, easeName string) Curve {
	if len(keys) > 0 {
		return KeyframeCurve(keys...)
	}
	if easeName == "" {
		return LinearCurve
	}
	fn, err := ParseEase(easeName)
	if err != nil {
		return LinearCurve
	}
	return EaseCurve(fn)
}

// --- Name tables ---

var eases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inBack":     ease.InBack,
	"outBack":    ease.OutBack,
	"inOutBack":  ease.InOutBack,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// ParseEase resolves an easing name such as "outCubic". Names are
// case-insensitive; the empty name is linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	for k, fn := range eases {
		if strings.EqualFold(k, name) {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

var snapModes = map[string]SnapMode{
	"nearest": SnapNearest,
	"step":    SnapStep,
}

var releaseModes = map[string]ReleaseMode{
	"immediate":    ReleaseImmediate,
	"when_stopped": ReleaseWhenStopped,
}

var boundaryPolicies = map[string]BoundaryPolicy{
	"none":            BoundaryNone,
	"lock_drag":       BoundaryLockDrag,
	"suppress_settle": BoundarySuppressSettle,
}

var boundaryEdges = map[string]BoundaryEdges{
	"both":  EdgeBoth,
	"start": EdgeStart,
	"end":   EdgeEnd,
}

var channels = map[string]Channel{
	"scale":    ChannelScale,
	"rotation": ChannelRotation,
	"alpha":    ChannelAlpha,
}

func parseChannel(name string) (Channel, error) {
	ch, ok := channels[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown channel %q", name)
	}
	return ch, nil
}

// lookup resolves name in table. The empty name maps to the zero value.
func lookup[T any](field, name string, table map[string]T) (T, error) {
	var zero T
	if name == "" {
		return zero, nil
	}
	v, ok := table[strings.ToLower(name)]
	if !ok {
		return zero, fmt.Errorf("%s: unknown value %q", field, name)
	}
	return v, nil
}

// UnmarshalYAML parses "horizontal", "vertical" or "both".
func (a *ScrollAxis) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "horizontal", "":
		*a = AxisHorizontal
	case "vertical":
		*a = AxisVertical
	case "both":
		*a = AxisBoth
	default:
		return fmt.Errorf("line %d: unknown axis %q", value.Line, s)
	}
	return nil
}

// MarshalYAML writes the axis name.
func (a ScrollAxis) MarshalYAML() (any, error) {
	return a.String(), nil
}
