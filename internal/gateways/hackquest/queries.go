package hackquest

const (
	getNonceMutation = `mutation GetNonce($address: String!) {
  nonce: getNonce(address: $address) {
    nonce
    message
  }
}`

	userFields = `fragment baseUserInfo on UserExtend {
  id
  uid
  username
  status
  inviteCode
  invitedBy
}`

	loginByWalletMutation = `mutation LoginByWallet($input: SignInByWalletInput!) {
  loginByWallet(input: $input) {
    access_token
    user {
      ...baseUserInfo
    }
  }
}
` + userFields

	activateUserMutation = `mutation ActivateUser($accessToken: String!, $inviteCode: String) {
  activateUser(access_token: $accessToken, inviteCode: $inviteCode) {
    access_token
    user {
      ...baseUserInfo
    }
    status
    error
  }
}
` + userFields

	findActiveEcosystemQuery = `query FindActiveEcosystem {
  ecosystem: findActiveEcosystem {
    id
  }
}`

	findEcosystemInfoQuery = `query FindActiveEcosystemInfo($where: EcosystemInfoWhereUniqueInput!) {
  ecosystem: findUniqueEcosystemInfo(where: $where) {
    ecosystemId
    phases {
      id
      order
      certificateId
      courses {
        id
      }
      quizzes {
        id
        quizList {
          id
        }
      }
    }
    currentPhase {
      id
    }
  }
}`

	listEcosystemsQuery = `query ListActiveEcosystemInfos($lang: String!) {
  ecosystems: listActiveEcosystemInfos(lang: $lang) {
    ecosystemId
    progress {
      status
    }
  }
}`

	findCourseUnitsQuery = `query FindCourseUnits($where: CourseV2WhereInput) {
  findCourseDetail(where: $where) {
    id
    units {
      pages {
        id
        title
      }
    }
  }
}`

	findPageQuery = `query FindUniquePage($where: PageV2WhereUniqueInput!) {
  findUniquePage(where: $where) {
    id
    content
  }
}`

	submitQuizMutation = `mutation SubmitQuiz($input: SubmitQuizInput!) {
  submitQuiz(input: $input) {
    treasure {
      exp
      coin
    }
  }
}`

	completeLessonMutation = `mutation CompleteLesson($input: CompleteLessonInput!) {
  completeLesson(input: $input) {
    nextLearningInfo {
      id
    }
  }
}`

	submitPhaseQuizMutation = `mutation SubmitPhaseQuiz($input: SubmitPhaseQuizInput!) {
  submitPhaseQuiz(input: $input) {
    isCompleted
    tryAgain
    progress
    treasure {
      coin
      exp
    }
  }
}`

	claimPhaseRewardMutation = `mutation ClaimPhaseReward($phaseId: String!) {
  claimPhaseReward(phaseId: $phaseId) {
    coin
    claimed
  }
}`

	switchPhaseMutation = `mutation SwitchCurrentPhase($phaseId: String!) {
  switchCurrentPhase(phaseId: $phaseId)
}`

	claimMissionMutation = `mutation ClaimMissionReward($missionId: String!) {
  claimMissionReward(missionId: $missionId) {
    coin
    exp
  }
}`

	certificateProgressQuery = `query CertificateProgress($where: EcosystemInfoWhereUniqueInput!) {
  certificate: certificateProgress(where: $where) {
    id
    name
    chainId
    contract
    userCertification {
      mint
      claimed
      certificateId
      username
    }
  }
}`

	claimCertificationMutation = `mutation ClaimCertification($certificationId: String!, $username: String!) {
  certificate: claimCertification(certificationId: $certificationId, username: $username) {
    id
    claimed
  }
}`

	certificationSignatureMutation = `mutation GetCertificationSignature($certificationId: String!, $address: String!) {
  signature: getCertificationSignature(certificationId: $certificationId, address: $address) {
    msg
    signature
  }
}`

	createPetMutation = `mutation CreatePet($name: String!) {
  createPet(name: $name) {
    id
    name
  }
}`

	feedPetMutation = `mutation FeedPet($amount: Float!) {
  feedPet(amount: $amount) {
    userId
    level
    exp
  }
}`
)

// Page content blocks that carry a quiz question.
var questionBlockTypes = map[string]bool{
	"ChoiceFill": true,
	"Choice":     true,
	"QuizA":      true,
	"QuizB":      true,
	"QuizC":      true,
}

// Platform error messages with domain meaning.
const (
	msgRewardClaimed = "The reward has been claimed!"
	msgPetExists     = "already exists"
)
