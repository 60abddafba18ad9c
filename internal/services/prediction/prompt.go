package prediction

import (
	"fmt"
	"strings"

	"github.com/ivankudzin/soulmate/backend/internal/domain/model"
)

const predictionSystemPreamble = `你是一个专业的灵魂伴侣预测AI，擅长根据用户的个人信息和偏好，生成有趣、温暖、富有想象力的预测结果。请用中文回答，语气要温暖友好。`

// buildPredictionPrompt interpolates the profile into the fixed instruction
// template. Values go in verbatim; downstream only reads the text.
func buildPredictionPrompt(profile model.Profile) string {
	var b strings.Builder

	b.WriteString(predictionSystemPreamble)
	b.WriteString("\n\n请根据以下用户信息，生成一个有趣的灵魂伴侣预测结果。要求：\n\n")
	b.WriteString("用户信息：\n")
	fmt.Fprintf(&b, "- 性别: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- 出生日期: %s\n", profile.Birthdate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- 星座: %s\n", profile.Zodiac)
	b.WriteString("- 性格倾向:\n")
	fmt.Fprintf(&b, "  - 内向/外向倾向: %s (%d%%)\n", axisLabel(profile.Personality.Introvert, "偏内向", "偏外向"), profile.Personality.Introvert)
	fmt.Fprintf(&b, "  - 感性/理性倾向: %s (%d%%)\n", axisLabel(profile.Personality.Emotional, "偏感性", "偏理性"), profile.Personality.Emotional)
	fmt.Fprintf(&b, "- 理想型关键词: %s\n", strings.Join(profile.Keywords, "、"))

	b.WriteString(`
请生成一个JSON格式的结果，包含以下字段：
{
  "title": "你的命定恋人是：[一个富有诗意的称号，如'温润如玉的守护者']",
  "description": "[一段200字左右的性格描述，要温暖、细腻、有画面感]",
  "tip": "[一条相遇小贴士，告诉用户在哪里可能遇到Ta]",
  "imageDescription": "[一段详细的人物画像描述，100-150字，包括：外貌特征（脸型、眼睛、发型、身材等）、气质风格、穿着打扮、整体印象。要生动具体，能够让人在脑海中形成清晰的画面，符合前面描述的性格特点。描述要适合用于AI图片生成，使用具体、视觉化的语言]",
  "radar": {
    "颜值": [70-100之间的随机整数],
    "财富": [60-100之间的随机整数],
    "情绪价值": [75-100之间的随机整数],
    "契合度": [80-100之间的随机整数],
    "性格互补": [70-100之间的随机整数]
  }
}

重要提示：
1. imageDescription 字段必须详细描述人物的外貌特征，要具体生动，能够用于生成人物画像
2. 画像描述应该与性格描述和称号保持一致
3. 请确保返回的是有效的JSON格式，不要包含任何额外的文字说明。`)

	return b.String()
}

func axisLabel(value int, below, atOrAbove string) string {
	if value < 50 {
		return below
	}
	return atOrAbove
}
