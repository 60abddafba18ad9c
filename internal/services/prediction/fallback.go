package prediction

import "github.com/ivankudzin/soulmate/backend/internal/domain/model"

const titlePrefix = "你的命定恋人是："

// Canned content pools. These are the only guaranteed output when no model
// is reachable, so the entries are fixed product copy, not placeholders.
var fallbackTitles = []string{
	"温润如玉的守护者",
	"阳光活力的冒险家",
	"知性优雅的学者",
	"神秘高冷的艺术家",
	"幽默风趣的开心果",
	"温柔体贴的治愈系",
}

var fallbackTips = []string{
	"Ta 可能会在雨天的图书馆出现",
	"Ta 喜欢在咖啡厅的窗边位置看书",
	"Ta 经常出现在周末的公园里",
	"Ta 会在艺术展览的角落静静欣赏",
	"Ta 喜欢在书店的文学区徘徊",
	"Ta 可能在音乐节的舞台前等待",
}

var fallbackDescriptions = []string{
	"Ta 是一个内心温暖而细腻的人，像春天的阳光一样和煦。在人群中可能不太起眼，但一旦深入交流，你会发现 Ta 有着丰富的内心世界和独特的见解。Ta 喜欢安静的环境，但也享受偶尔的热闹。",
	"Ta 充满活力和好奇心，总是对世界保持着探索的热情。性格开朗外向，能够轻松地与人建立联系。Ta 喜欢尝试新事物，但也懂得在适当的时候放慢脚步，享受生活的美好。",
	"Ta 是一个理性而优雅的人，喜欢深度思考和哲学讨论。虽然外表可能显得高冷，但内心其实很温暖。Ta 重视精神层面的交流，追求灵魂的契合。",
}

var fallbackImageDescriptions = []string{
	"Ta 有着温和的鹅蛋脸，眼睛清澈明亮，像星星一样闪烁。柔顺的棕色中长发，自然垂落在肩头。身材匀称，气质温文尔雅。常穿着简约舒适的浅色系服装，整体给人一种温暖亲切的感觉。",
	"Ta 拥有阳光般的笑容，五官立体分明，眼神充满活力。短发利落，身材高挑健硕。喜欢穿着休闲运动风格的衣服，色彩明亮，整体散发着青春活力的气息。",
	"Ta 面容清秀，眼神深邃而智慧，戴着一副细框眼镜。发型整齐，身材修长。穿着简约优雅，偏爱深色系或中性色调，整体气质知性而内敛，散发着书卷气息。",
	"Ta 有着精致的五官，眼神神秘而迷人，长发飘逸。身材纤细，气质独特。穿着风格偏向艺术感，喜欢有设计感的服装，整体给人一种高冷而优雅的印象。",
	"Ta 面容亲切，眼睛弯弯的总是带着笑意，发型随意自然。身材适中，举止轻松。穿着风格活泼有趣，喜欢有图案或亮色的衣服，整体散发着幽默风趣的魅力。",
	"Ta 有着柔和的面部轮廓，眼神温柔如水，长发如丝。身材娇小，气质甜美。穿着风格偏向可爱温柔，喜欢粉色、白色等柔和的颜色，整体给人一种治愈系的感觉。",
}

// radarRange is the base+width pair for one radar category. Scores above
// 100 are possible and intentionally left uncapped.
type radarRange struct {
	base  int
	width int
}

var radarRanges = map[string]radarRange{
	model.RadarLooks:         {base: 70, width: 30},
	model.RadarWealth:        {base: 60, width: 30},
	model.RadarEmotional:     {base: 75, width: 30},
	model.RadarCompatibility: {base: 80, width: 30},
	model.RadarComplement:    {base: 70, width: 30},
}

// fallbackMatchResult synthesizes a complete card from the pools. Picks are
// uniform and independent per field, and never depend on the profile.
func (s *Service) fallbackMatchResult() model.MatchResult {
	radar := make(map[string]int, 5)
	for _, category := range model.RadarCategories() {
		radar[category] = s.radarScore(category)
	}

	return model.MatchResult{
		Title:            titlePrefix + s.pick(fallbackTitles),
		Description:      s.pick(fallbackDescriptions),
		Tip:              s.pick(fallbackTips),
		ImageDescription: s.pick(fallbackImageDescriptions),
		ImageURL:         nil,
		Radar:            radar,
	}
}

func (s *Service) pick(pool []string) string {
	return pool[s.intn(len(pool))]
}

func (s *Service) radarScore(category string) int {
	r := radarRanges[category]
	return r.base + s.intn(r.width)
}
