package analysis

import "github.com/ivankudzin/soulmate/backend/internal/domain/model"

// Fixed fallback copy, one text per section. Unlike the prediction pools
// these are single entries, so no randomness is involved.
const fallbackPersonalityTraits = `根据你的描述，你展现出了较为内敛的性格特点。你倾向于在安静的环境中思考和工作，这让你能够更深入地理解自己和周围的世界。你重视内心的平静，但也渴望与他人建立有意义的联系。

你的思维模式偏向理性和深度，喜欢在行动前仔细思考。这种特质让你在决策时更加谨慎，但也可能让你在某些情况下显得犹豫不决。你对自己的要求较高，追求完美，这既是你的优点，也可能成为压力的来源。`

const fallbackMentalState = `从你的描述中可以看出，你目前处于一种较为复杂的情感状态。一方面，你对自己的生活有清晰的认知和目标；另一方面，你也感受到了一定的压力和焦虑。

这种状态是正常的，特别是在面对工作、学习或人际关系中的挑战时。你正在努力调整自己的心态，这说明你具备良好的自我觉察能力和成长意愿。你需要在保持努力的同时，也要学会给自己一些放松和休息的空间。`

const fallbackSuggestions = `1. **保持平衡**：在追求目标的同时，记得给自己留出休息和放松的时间。适当的休息有助于提高效率和保持心理健康。

2. **建立支持系统**：虽然你比较内向，但不要完全孤立自己。尝试与信任的朋友或家人分享你的感受，他们的支持会让你感到更有力量。

3. **练习自我关怀**：每天花一些时间做自己喜欢的事情，无论是阅读、听音乐还是简单的散步，都能帮助你缓解压力。

4. **设定合理期望**：不要对自己过于苛刻，接受自己的不完美，给自己一些成长的空间和时间。`

const fallbackSummary = `你是一个内敛而深思的人，具备良好的自我觉察能力。虽然目前面临一些压力和挑战，但你正在积极地调整和成长。记住，保持内心的平衡，给自己一些空间和时间，你会找到属于自己的节奏和方式。`

func fallbackResult() model.PersonalityResult {
	return model.PersonalityResult{
		PersonalityTraits: fallbackPersonalityTraits,
		MentalState:       fallbackMentalState,
		Suggestions:       fallbackSuggestions,
		Summary:           fallbackSummary,
	}
}
