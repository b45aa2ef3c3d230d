package style

// CatalogFont is a named font offered for selection.
type CatalogFont struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Catalog lists the selectable named fonts. The files are not bundled; they
// are expected in the exporter's font directory as <Name>.ttf and can be
// downloaded from URL.
var Catalog = []CatalogFont{
	{Name: "Vazirmatn", Label: "Vazirmatn", URL: "https://cdn.jsdelivr.net/gh/rastikerdar/vazirmatn@v33.003/fonts/ttf/Vazirmatn-Regular.ttf"},
	{Name: "Cairo", Label: "Cairo - كايرو", URL: "https://arbfonts.com//wp-content/fonts/new-arabic-fonts//Cairo-Regular.ttf"},
	{Name: "Amiri", Label: "Amiri - أميري", URL: "https://arbfonts.com/font_files/new//Amiri.ttf"},
	{Name: "Tajawal", Label: "Tajawal - تجول", URL: "https://arbfonts.com/font_files/new//Amiri.ttf"},
	{Name: "Almarai", Label: "Almarai - المرعي", URL: "https://arbfonts.com//wp-content/fonts/naskh-arabic-fonts//Almarai-Regular.ttf"},
	{Name: "Markazi", Label: "Graphic School Regular - جرافيك سكول", URL: "https://arbfonts.com//wp-content/fonts/arabic-fonts-wierd//GraphicSchool-Regular.ttf"},
	{Name: "ReemKufi", Label: "Reem Kufi - ريم كوفي", URL: "https://fonts.gstatic.com/s/reemkufi/v21/2sDPZGJLip7W2J7v7wQZZE1I0yCmYzzQtuZnEGGf3qGuvM4.ttf"},
}

// LookupFont finds a catalog entry by name.
func LookupFont(name string) (CatalogFont, bool) {
	for _, f := range Catalog {
		if f.Name == name {
			return f, true
		}
	}
	return CatalogFont{}, false
}
