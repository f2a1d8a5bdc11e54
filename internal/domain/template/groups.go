// Package template holds the predefined checklist groups offered at first
// setup. Importing a template group creates its whole category subtree in one
// atomic write, with purchased counts starting at zero.
package template

// CategorySpec describes one category of a template group.
type CategorySpec struct {
	Name           string
	Description    string
	TargetQuantity int
}

// GroupSpec describes one template group with its categories.
type GroupSpec struct {
	Name       string
	Icon       string
	Color      string
	Categories []CategorySpec
}

// PredefinedGroups is the built-in dowry checklist, in display order.
var PredefinedGroups = []GroupSpec{
	{
		Name:  "Mutfak",
		Icon:  "🍳",
		Color: "#E8B4BC",
		Categories: []CategorySpec{
			{Name: "Tencere takımı", TargetQuantity: 1},
			{Name: "Düdüklü tencere", TargetQuantity: 1},
			{Name: "Tava takımı", TargetQuantity: 1},
			{Name: "Çaydanlık", TargetQuantity: 1},
			{Name: "Kek–borcam–fırın kapları", TargetQuantity: 1},
			{Name: "Kesme tahtası", TargetQuantity: 1},
			{Name: "Servis kaşıkları – kepçe – spatula", TargetQuantity: 1},
			{Name: "Rende – soyacak – makas", TargetQuantity: 1},
			{Name: "Süzgeç", TargetQuantity: 1},
			{Name: "Karıştırma kapları", TargetQuantity: 1},
			{Name: "Saklama kapları", TargetQuantity: 1},
			{Name: "Kavanoz seti", TargetQuantity: 1},
			{Name: "Baharatlık", TargetQuantity: 1},
			{Name: "Tepsi", TargetQuantity: 1},
			{Name: "Termos", TargetQuantity: 1},
		},
	},
	{
		Name:  "Sofra – Sunum",
		Icon:  "🍽️",
		Color: "#D4A5A5",
		Categories: []CategorySpec{
			{Name: "Günlük yemek takımı", TargetQuantity: 1},
			{Name: "Misafir yemek takımı", TargetQuantity: 1},
			{Name: "Çatal bıçak kaşık takımı", TargetQuantity: 1},
			{Name: "Çay bardağı takımı", TargetQuantity: 1},
			{Name: "Kahvaltı takımı", TargetQuantity: 1},
			{Name: "Fincan takımı", TargetQuantity: 1},
			{Name: "Su bardakları", TargetQuantity: 1},
			{Name: "Masa örtüsü – runner – peçete", TargetQuantity: 1},
		},
	},
	{
		Name:  "Küçük Ev Aletleri",
		Icon:  "🔌",
		Color: "#9FA8DA",
		Categories: []CategorySpec{
			{Name: "Elektrikli süpürge", TargetQuantity: 1},
			{Name: "Ütü", TargetQuantity: 1},
			{Name: "Kettle", TargetQuantity: 1},
			{Name: "Tost makinesi", TargetQuantity: 1},
			{Name: "Blender / rondo", TargetQuantity: 1},
			{Name: "Kahve makinesi", TargetQuantity: 1},
			{Name: "Saç kurutma makinesi", TargetQuantity: 1},
		},
	},
	{
		Name:  "Yatak Odası – Tekstil",
		Icon:  "🛏️",
		Color: "#CE93D8",
		Categories: []CategorySpec{
			{Name: "Yorganlar", TargetQuantity: 1},
			{Name: "Yastıklar", TargetQuantity: 1},
			{Name: "Nevresim takımları", TargetQuantity: 1},
			{Name: "Çarşaflar", TargetQuantity: 1},
			{Name: "Pike / battaniye", TargetQuantity: 1},
			{Name: "Yatak alezi", TargetQuantity: 1},
			{Name: "Hurçlar", TargetQuantity: 1},
			{Name: "Askılar", TargetQuantity: 1},
		},
	},
	{
		Name:  "Banyo",
		Icon:  "🚿",
		Color: "#80CBC4",
		Categories: []CategorySpec{
			{Name: "Havlular", TargetQuantity: 1},
			{Name: "Bornoz takımı", TargetQuantity: 1},
			{Name: "Banyo paspası", TargetQuantity: 1},
			{Name: "Kirli sepeti", TargetQuantity: 1},
			{Name: "Sabunluk – fırçalık", TargetQuantity: 1},
			{Name: "Tuvalet fırçası", TargetQuantity: 1},
		},
	},
	{
		Name:  "Temizlik",
		Icon:  "🧽",
		Color: "#90CAF9",
		Categories: []CategorySpec{
			{Name: "Süpürge (klasik veya elektirikli)", TargetQuantity: 1},
			{Name: "Mop", TargetQuantity: 1},
			{Name: "Kovalar", TargetQuantity: 1},
			{Name: "Temizlik bezleri", TargetQuantity: 1},
			{Name: "Deterjanlar ve temizlik ürünleri", TargetQuantity: 1},
			{Name: "Kurutmalık", TargetQuantity: 1},
			{Name: "Mandal", TargetQuantity: 1},
		},
	},
	{
		Name:  "Salon – Ev Genel",
		Icon:  "🛋️",
		Color: "#BCAAA4",
		Categories: []CategorySpec{
			{Name: "Koltuk takımı", TargetQuantity: 1},
			{Name: "TV ünitesi", TargetQuantity: 1},
			{Name: "Orta sehpa", TargetQuantity: 1},
			{Name: "Halılar", TargetQuantity: 1},
			{Name: "Perde – tül – fon", TargetQuantity: 1},
			{Name: "Kırlentler", TargetQuantity: 1},
		},
	},
	{
		Name:  "Çeyizlik – Misafirlik",
		Icon:  "🎁",
		Color: "#C5E1A5",
		Categories: []CategorySpec{
			{Name: "Bohça", TargetQuantity: 1},
			{Name: "Çeyiz sandığı", TargetQuantity: 1},
			{Name: "Seccade", TargetQuantity: 1},
			{Name: "Misafir terliği", TargetQuantity: 1},
			{Name: "Çeyizlik nevresim takımı", TargetQuantity: 1},
		},
	},
	{
		Name:  "Diğer Gerekli Şeyler",
		Icon:  "🧰",
		Color: "#B0BEC5",
		Categories: []CategorySpec{
			{Name: "Dikiş seti", TargetQuantity: 1},
			{Name: "İlk yardım çantası", TargetQuantity: 1},
			{Name: "Uzatma kablosu", TargetQuantity: 1},
			{Name: "Priz çoğaltıcı", TargetQuantity: 1},
			{Name: "Küçük alet seti (çekiç–tornavida)", TargetQuantity: 1},
		},
	},
}

// FindGroup returns the template group with the given name, or nil.
func FindGroup(name string) *GroupSpec {
	for i := range PredefinedGroups {
		if PredefinedGroups[i].Name == name {
			return &PredefinedGroups[i]
		}
	}
	return nil
}
