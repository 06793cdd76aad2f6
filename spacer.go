package cellui

// SpacerProps configures a spacer. A spacer with Flex > 0 takes a share of
// the free space in its list; otherwise it occupies Size.
type SpacerProps struct {
	Flex float32
	Size Vec2
}

type spacerWidget struct {
	Base
	props SpacerProps
}

func (w *spacerWidget) Update(_ *Tree, props SpacerProps) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *spacerWidget) Flex() (float32, FlexFit) {
	return w.props.Flex, FitTight
}

func (w *spacerWidget) Layout(_ *LayoutCtx, c Constraints) Vec2 {
	return c.Constrain(w.props.Size)
}

// Spacer declares a spacer that grows to fill the available space.
func Spacer(t *Tree) Response[NoResponse] {
	return Show[spacerWidget, SpacerProps, NoResponse](t, SpacerProps{Flex: 1})
}

// FixedSpacer declares a spacer of size cells on both axes.
func FixedSpacer(t *Tree, size float32) Response[NoResponse] {
	return Show[spacerWidget, SpacerProps, NoResponse](t, SpacerProps{Size: Splat(size)})
}

// Flexible wraps its children in a flex item.
type Flexible struct {
	Flex float32
	Fit  FlexFit
}

// Show declares the flex item with its children.
func (f Flexible) Show(t *Tree, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[flexibleWidget, Flexible, NoResponse](t, f, children)
}

type flexibleWidget struct {
	Base
	props Flexible
}

func (w *flexibleWidget) Update(_ *Tree, props Flexible) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *flexibleWidget) Flex() (float32, FlexFit) {
	return w.props.Flex, w.props.Fit
}

// Flex declares a loose flex item of the given weight.
func Flex(t *Tree, flex float32, children func(t *Tree)) Response[NoResponse] {
	return Flexible{Flex: flex}.Show(t, children)
}

// Expanded declares a flex item of weight 1 that must fill its share.
func Expanded(t *Tree, children func(t *Tree)) Response[NoResponse] {
	return Flexible{Flex: 1, Fit: FitTight}.Show(t, children)
}
