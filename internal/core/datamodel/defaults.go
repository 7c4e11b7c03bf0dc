package datamodel

// DefaultCategories returns the built-in category set a fresh (or reset)
// store starts with. Callers get a new slice; the records themselves are
// value types so mutation is safe.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-1", Name: "Food", Color: "hsl(var(--chart-1))", Icon: IconUtensils},
		{ID: "cat-2", Name: "Transportation", Color: "hsl(var(--chart-2))", Icon: IconCar},
		{ID: "cat-3", Name: "Utilities", Color: "hsl(var(--chart-3))", Icon: IconHome},
		{ID: "cat-4", Name: "Entertainment", Color: "hsl(var(--chart-4))", Icon: IconTicket},
		{ID: "cat-5", Name: "Health", Color: "hsl(var(--chart-5))", Icon: IconHeartPulse},
		{ID: "cat-6", Name: "Shopping", Color: "hsl(19.3, 91.1%, 53.3%)", Icon: IconShoppingBag},
		{ID: "cat-7", Name: "Other", Color: "hsl(210, 40%, 56.1%)", Icon: IconEllipsis},
	}
}

// DefaultIcons maps the built-in category ids to their icon tags.
func DefaultIcons() map[string]IconKind {
	icons := make(map[string]IconKind)
	for _, c := range DefaultCategories() {
		icons[c.ID] = c.Icon
	}
	return icons
}

// IconFor resolves a category id to an icon tag. It is total: ids not in
// known fall back to IconShapes.
func IconFor(known map[string]IconKind, id string) IconKind {
	if icon, ok := known[id]; ok {
		return icon
	}
	return IconShapes
}

// AttachIcons re-binds icon tags to categories loaded from storage, where
// icons are never persisted. Unknown ids get the default icon.
func AttachIcons(categories []Category) []Category {
	known := DefaultIcons()
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Icon = IconFor(known, c.ID)
		out[i] = c
	}
	return out
}
