package badge

import (
	"asset-badge/resolver"
	"asset-badge/util/convert"
)

// IconKind tells how the asset icon is drawn.
type IconKind int

// Icon kinds.
const (
	// IconSkeleton is the placeholder while metadata loads.
	IconSkeleton IconKind = iota
	// IconImage shows the resolved image.
	IconImage
	// IconAvatar shows initials of the name, there is no image.
	IconAvatar
)

func (k IconKind) String() string {
	switch k {
	case IconSkeleton:
		return "skeleton"
	case IconImage:
		return "image"
	case IconAvatar:
		return "avatar"
	}
	return "unknown"
}

// Placeholder of an empty quantity field.
const Placeholder = "Qty"

// Icon opens the asset details when clicked, unless it is a skeleton.
type Icon struct {
	Kind        IconKind
	Src         string
	Name        string
	Fingerprint string
}

// Field is the quantity text field.
type Field struct {
	Value       string
	Placeholder string
	ReadOnly    bool
	Width       int
	MaxWidth    int
	Invalid     bool
}

// View is everything needed to draw a badge.
type View struct {
	State     State
	Icon      Icon
	Field     Field
	Removable bool
}

// View renders the current state, the zero View is returned before mount.
func (b *Badge) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	asset := b.asset
	if asset == nil {
		return View{}
	}

	name := asset.DisplayName
	if name == "" {
		name = resolver.Fallback(asset).DisplayName
	}

	icon := Icon{Kind: IconSkeleton, Name: name, Fingerprint: asset.Fingerprint()}
	if b.state == Ready {
		if asset.Image != "" {
			icon.Kind = IconImage
			icon.Src = asset.Image
		} else {
			icon.Kind = IconAvatar
		}
	}

	readOnly := asset.SingleUnit()
	value := asset.Input
	if readOnly {
		value = convert.QuantityString(asset.Quantity)
	}

	return View{
		State: b.state,
		Icon:  icon,
		Field: Field{
			Value:       value,
			Placeholder: Placeholder,
			ReadOnly:    readOnly,
			Width:       RenderWidth(b.displayWidth),
			MaxWidth:    MaxWidth,
			Invalid:     b.validator.OutOfRange(value, asset.Quantity),
		},
		Removable: !b.unmounted,
	}
}
