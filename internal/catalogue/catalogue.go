// Package catalogue holds the fixed, immutable, process-wide country
// descriptor list the Memory rule engine draws its card faces from.
package catalogue

// Country is one flag-memory card face: a stable key, an emoji flag glyph
// and a Korean display name, matching the Memory room's card shape in the
// data model.
type Country struct {
	Key    string
	Flag   string
	NameKo string
}

// All is the full catalogue, large enough to cover the largest supported
// deck (60 cards = 30 distinct countries).
var All = []Country{
	{"kr", "🇰🇷", "대한민국"},
	{"us", "🇺🇸", "미국"},
	{"jp", "🇯🇵", "일본"},
	{"cn", "🇨🇳", "중국"},
	{"fr", "🇫🇷", "프랑스"},
	{"de", "🇩🇪", "독일"},
	{"gb", "🇬🇧", "영국"},
	{"it", "🇮🇹", "이탈리아"},
	{"es", "🇪🇸", "스페인"},
	{"ca", "🇨🇦", "캐나다"},
	{"br", "🇧🇷", "브라질"},
	{"au", "🇦🇺", "오스트레일리아"},
	{"in", "🇮🇳", "인도"},
	{"ru", "🇷🇺", "러시아"},
	{"mx", "🇲🇽", "멕시코"},
	{"nl", "🇳🇱", "네덜란드"},
	{"se", "🇸🇪", "스웨덴"},
	{"ch", "🇨🇭", "스위스"},
	{"no", "🇳🇴", "노르웨이"},
	{"fi", "🇫🇮", "핀란드"},
	{"pt", "🇵🇹", "포르투갈"},
	{"gr", "🇬🇷", "그리스"},
	{"tr", "🇹🇷", "튀르키예"},
	{"eg", "🇪🇬", "이집트"},
	{"za", "🇿🇦", "남아프리카공화국"},
	{"ar", "🇦🇷", "아르헨티나"},
	{"th", "🇹🇭", "태국"},
	{"vn", "🇻🇳", "베트남"},
	{"id", "🇮🇩", "인도네시아"},
	{"nz", "🇳🇿", "뉴질랜드"},
}

// MaxPairs is the largest number of distinct countries any supported deck
// size can request (60 cards / 2).
const MaxPairs = 30
