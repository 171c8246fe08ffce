package catalog

const mediumFeedBase = "https://medium.com/feed/"

// topicSlugs are Medium tag feeds, served at mediumFeedBase + "tag/" + slug.
var topicSlugs = []string{
	"artificial-intelligence",
	"machine-learning",
	"data-science",
	"deep-learning",
	"python",
	"javascript",
	"java",
	"cpp",
	"golang",
	"rust",
	"typescript",
	"react",
	"angular",
	"vuejs",
	"nodejs",
	"django",
	"flask",
	"fastapi",
	"aws",
	"azure",
	"google-cloud",
	"docker",
	"kubernetes",
	"devops",
	"cicd",
	"blockchain",
	"cryptocurrency",
	"bitcoin",
	"ethereum",
	"web3",
	"nft",
	"cybersecurity",
	"infosec",
	"ethical-hacking",
	"penetration-testing",
	"ios-development",
	"android-development",
	"flutter",
	"react-native",
	"game-development",
	"unity",
	"unreal-engine",
	"big-data",
	"data-analytics",
	"data-visualization",
	"tableau",
	"powerbi",
	"sql",
	"mongodb",
	"postgresql",
	"redis",
	"elasticsearch",
	"apache-spark",
	"hadoop",
	"kafka",
	"airflow",
	"natural-language-processing",
	"computer-vision",
	"reinforcement-learning",
	"neural-networks",
	"transformers",
	"gpt",
	"llm",
	"chatgpt",
	"tensorflow",
	"pytorch",
	"keras",
	"scikit-learn",
	"startup",
	"entrepreneurship",
	"business-strategy",
	"product-management",
	"leadership",
	"management",
	"career",
	"career-advice",
	"job-search",
	"remote-work",
	"freelancing",
	"side-hustle",
	"passive-income",
	"productivity",
	"time-management",
	"self-improvement",
}

// publicationSlugs are Medium publication feeds, served at mediumFeedBase + slug.
var publicationSlugs = []string{
	"@towardsdatascience",
	"better-programming",
	"python-in-plain-english",
	"javascript-in-plain-english",
	"codex",
	"analytics-vidhya",
	"the-startup",
	"hackernoon",
	"dev-genius",
	"level-up-coding",
	"towards-dev",
	"towards-ai",
	"ai-in-plain-english",
	"data-driven-investor",
	"the-programming-hub",
	"git-connected",
	"geek-culture",
	"aws-in-plain-english",
	"cloud-native-daily",
	"itnext",
	"ux-collective",
	"bootcamp",
	"entrepreneur-handbook",
	"better-humans",
	"personal-growth",
	"the-writing-cooperative",
}

var (
	techKeywords = []string{
		"python", "javascript", "programming", "ai", "machine-learning", "data",
		"artificial-intelligence", "data-science", "deep-learning",
		"java", "cpp", "golang", "rust", "typescript",
		"react", "angular", "vuejs", "nodejs", "django", "flask", "fastapi",
		"aws", "azure", "google-cloud", "docker", "kubernetes", "devops", "cicd",
		"ios-development", "android-development", "flutter", "react-native",
		"game-development",
	}
	aimlKeywords = []string{
		"big-data", "data-analytics", "data-visualization", "tableau", "powerbi",
		"sql", "mongodb", "postgresql", "redis", "elasticsearch",
		"apache-spark", "hadoop", "kafka", "airflow", "natural-language-processing",
		"computer-vision", "reinforcement-learning", "neural-networks", "transformers",
		"gpt", "llm", "chatgpt", "tensorflow", "pytorch", "keras", "scikit-learn",
	}
	businessKeywords = []string{"startup", "entrepreneur", "business", "leadership", "product"}
	designKeywords   = []string{"design", "ux", "ui"}
)
